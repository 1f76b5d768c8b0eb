package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pokeforge/pokeforge/pkg/scheduler"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// DynamoDBAPI defines the subset of the DynamoDB client used by the store.
// Declared here so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	Scheduler            scheduler.EventScheduler
	TokensTableName      string
	ItemsTableName       string
	ConnectionsTableName string
}

// New creates a new Store. The scheduler may be nil when change-event fanout
// is not wanted (lambdas, tests).
func New(client DynamoDBAPI, sched scheduler.EventScheduler, tokensTable, itemsTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		Scheduler:            sched,
		TokensTableName:      tokensTable,
		ItemsTableName:       itemsTable,
		ConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interfaces
var _ storage.Storage = (*Store)(nil)
var _ storage.ConnectionStore = (*Store)(nil)
