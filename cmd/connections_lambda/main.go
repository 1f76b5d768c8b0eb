package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	wshandler "github.com/pokeforge/pokeforge/pkg/handlers/websockets"
	dydbstore "github.com/pokeforge/pokeforge/pkg/storage/dynamodb"
)

var handler *wshandler.Handler

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	if connectionsTable == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	store := dydbstore.New(dbClient, nil, "", "", connectionsTable)
	handler = wshandler.NewHandler(store)
}

// HandleRequest routes API Gateway WebSocket events by route key.
func HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return handler.HandleConnect(ctx, request)
	case "$disconnect":
		return handler.HandleDisconnect(ctx, request)
	default:
		return handler.HandleDefault(ctx, request)
	}
}

func main() {
	lambda.Start(HandleRequest)
}
