package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/pokeforge/pokeforge/pkg/config"
	"github.com/pokeforge/pokeforge/pkg/forge"
	"github.com/pokeforge/pokeforge/pkg/generation"
	"github.com/pokeforge/pokeforge/pkg/handlers"
	wshandler "github.com/pokeforge/pokeforge/pkg/handlers/websockets"
	"github.com/pokeforge/pokeforge/pkg/inventory"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	"github.com/pokeforge/pokeforge/pkg/scheduler"
	dydbstore "github.com/pokeforge/pokeforge/pkg/storage/dynamodb"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)

	// SQS Client and Scheduler. Fanout is optional for local runs.
	var eventScheduler scheduler.EventScheduler
	if cfg.QueueURL != "" {
		sqsClient := sqs.NewFromConfig(awsCfg)
		eventScheduler = scheduler.NewSQSScheduler(sqsClient, cfg.QueueURL)
	}

	// Create our storage implementation
	store := dydbstore.New(dbClient, eventScheduler, cfg.TokensTableName, cfg.ItemsTableName, cfg.ConnectionsTableName)

	// Remote generation API and protocol client.
	api := generation.NewAPI(cfg.GenerationAPIBaseURL, cfg.GenerationAPIToken)

	var client generation.Client
	switch cfg.GenerationProtocol {
	case config.ProtocolSync:
		client = generation.NewSyncClient(api, cfg.RequestTimeout)
	default:
		client = generation.NewJobClient(api, cfg.PollInterval, cfg.MaxPollAttempts)
	}

	// Token ledger with its configured balance source.
	var source ledger.BalanceSource
	switch cfg.BalanceMode {
	case config.BalanceModeRemote:
		source = &ledger.RemoteSource{Client: api}
	default:
		source = &ledger.StoreSource{Store: store, StartingBalance: cfg.StartingBalance}
	}

	led := ledger.New(source, ledger.Config{
		GenerationCost: cfg.GenerationCost,
		ResaleReward:   cfg.ResaleReward,
	})
	if err := led.Initialize(context.Background()); err != nil {
		log.Fatalf("failed to initialize token ledger: %v", err)
	}

	rules := validation.Rules{
		MaxNameLength:   cfg.MaxNameLength,
		MaxPromptLength: cfg.MaxPromptLength,
		Rarities:        cfg.Rarities,
	}
	collection := inventory.NewManager(store, rules, eventScheduler)

	svc := forge.New(led, client, collection, store, api, eventScheduler, logger, forge.Config{
		GenerationCost: cfg.GenerationCost,
		ResaleReward:   cfg.ResaleReward,
		AtomicTrades:   cfg.TradeMode == config.TradeModeAtomic,
		RemoteResale:   cfg.BalanceMode == config.BalanceModeRemote,
	})

	router := handlers.NewRouter(logger, svc, collection, store, led, cfg.StartingBalance)

	// Local websocket endpoint; in AWS the connections lambda handles this.
	wsHandler := wshandler.NewHandler(store)
	router.Handle("/ws", wsHandler)

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
