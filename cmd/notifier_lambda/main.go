package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/pokeforge/pokeforge/pkg/models"
	dydbstore "github.com/pokeforge/pokeforge/pkg/storage/dynamodb"
	"github.com/pokeforge/pokeforge/pkg/websockets"
)

var publisher websockets.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")

	if connectionsTable == "" || apiEndpoint == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME and WEBSOCKET_API_ENDPOINT must be set")
	}

	store := dydbstore.New(dbClient, nil, "", "", connectionsTable)

	publisher, err = websockets.NewPublisher(store, store, apiEndpoint)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
}

// HandleRequest fans queued change events out to all connected clients.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event models.ChangeEvent
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal change event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if err := publisher.Publish(ctx, websockets.MessageFromEvent(&event)); err != nil {
			log.Printf("ERROR: failed to publish change event %s: %v", event.ID, err)
			return err
		}

		log.Printf("Successfully published change event %s", event.ID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
