package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// GetItem retrieves a creature item from DynamoDB by its ID.
func (s *Store) GetItem(ctx context.Context, id string) (*models.CreatureItem, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.ItemsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrItemNotFound
	}

	var item models.CreatureItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// PutItem upserts a creature item, stamping createdAt on first write and
// updatedAt always.
func (s *Store) PutItem(ctx context.Context, item *models.CreatureItem) (*models.CreatureItem, error) {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	itemAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.ItemsTableName),
		Item:      itemAV,
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}

	return item, nil
}

// DeleteItem deletes a creature item from DynamoDB.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("failed to marshal item ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.ItemsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item from DynamoDB: %w", err)
	}

	return nil
}

// ListItems retrieves all creature items from DynamoDB.
func (s *Store) ListItems(ctx context.Context) ([]models.CreatureItem, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ItemsTableName),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan items from DynamoDB: %w", err)
	}

	var items []models.CreatureItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	return items, nil
}
