package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/pokeforge/pokeforge/pkg/inventory"
	dydbstore "github.com/pokeforge/pokeforge/pkg/storage/dynamodb"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

var collection *inventory.Manager
var keepLast int

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	itemsTable := os.Getenv("DYNAMODB_ITEMS_TABLE_NAME")
	if itemsTable == "" {
		log.Fatal("DYNAMODB_ITEMS_TABLE_NAME environment variable not set")
	}

	keepLast = 100
	if v := os.Getenv("POKEFORGE_PURGE_KEEP_LAST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid POKEFORGE_PURGE_KEEP_LAST: %v", err)
		}
		keepLast = n
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, nil, "", itemsTable, "")

	// The purge path only deletes, so validation limits are irrelevant here.
	collection = inventory.NewManager(store, validation.Rules{}, nil)
}

// HandleRequest is triggered by an EventBridge Schedule. It trims the
// collection down to the newest entries.
func HandleRequest(ctx context.Context) error {
	log.Printf("Starting purge, keeping the newest %d pokemons...", keepLast)

	purged, err := collection.Purge(ctx, keepLast)
	if err != nil {
		log.Printf("ERROR: purge failed: %v", err)
		return err
	}

	if purged == 0 {
		log.Println("Nothing to purge.")
		return nil
	}

	log.Printf("Purged %d pokemons.", purged)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
