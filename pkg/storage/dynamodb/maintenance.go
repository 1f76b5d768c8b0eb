package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// Export returns a snapshot of the balance document and all items for data
// portability. A missing balance document exports as a nil tokens field.
func (s *Store) Export(ctx context.Context) (*models.Snapshot, error) {
	balance, err := s.GetBalance(ctx)
	if err != nil && !errors.Is(err, storage.ErrBalanceNotFound) {
		return nil, err
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Tokens:   balance,
		Pokemons: items,
	}, nil
}

// Import writes a snapshot back into the store. The balance document is
// overwritten when present; items are upserted with refreshed updatedAt stamps.
func (s *Store) Import(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("nil snapshot")
	}

	if snapshot.Tokens != nil {
		if _, err := s.SetBalance(ctx, snapshot.Tokens.Balance); err != nil {
			return fmt.Errorf("failed to import balance: %w", err)
		}
	}

	for i := range snapshot.Pokemons {
		item := snapshot.Pokemons[i]
		if _, err := s.PutItem(ctx, &item); err != nil {
			return fmt.Errorf("failed to import item %s: %w", item.ID, err)
		}
	}

	return nil
}

// Reset deletes and recreates the tokens and items tables, then seeds the
// balance document with the starting value. The closest DynamoDB analog of
// wiping and reopening a local database.
func (s *Store) Reset(ctx context.Context, startingBalance int64) error {
	for _, table := range []string{s.TokensTableName, s.ItemsTableName} {
		if err := s.recreateTable(ctx, table); err != nil {
			return err
		}
	}

	if _, err := s.SetBalance(ctx, startingBalance); err != nil {
		return fmt.Errorf("failed to seed balance after reset: %w", err)
	}

	return nil
}

func (s *Store) recreateTable(ctx context.Context, table string) error {
	_, err := s.Client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to delete table %s: %w", table, err)
		}
	} else {
		waiter := dynamodb.NewTableNotExistsWaiter(s.Client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute); err != nil {
			return fmt.Errorf("failed waiting for table %s deletion: %w", table, err)
		}
	}

	_, err = s.Client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.Client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute); err != nil {
		return fmt.Errorf("failed waiting for table %s creation: %w", table, err)
	}

	return nil
}
