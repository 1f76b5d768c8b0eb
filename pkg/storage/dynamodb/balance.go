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

// GetBalance retrieves the singleton balance document from DynamoDB.
func (s *Store) GetBalance(ctx context.Context) (*models.TokenBalance, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": models.TokenDocumentID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balance key: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TokensTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrBalanceNotFound
	}

	var balance models.TokenBalance
	if err := attributevalue.UnmarshalMap(result.Item, &balance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance: %w", err)
	}

	return &balance, nil
}

// EnsureBalance retrieves the balance document, creating it with the starting
// value on first access. Creation is conditional so a concurrent first access
// cannot clobber an existing balance.
func (s *Store) EnsureBalance(ctx context.Context, starting int64) (*models.TokenBalance, error) {
	existing, err := s.GetBalance(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrBalanceNotFound) {
		return nil, err
	}

	doc := &models.TokenBalance{
		ID:        models.TokenDocumentID,
		Balance:   starting,
		UpdatedAt: time.Now(),
	}

	docAV, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initial balance: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TokensTableName),
		Item:                docAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Lost the race; the document exists now.
			return s.GetBalance(ctx)
		}
		return nil, fmt.Errorf("failed to create initial balance in DynamoDB: %w", err)
	}

	return doc, nil
}

// SetBalance unconditionally overwrites the balance document.
func (s *Store) SetBalance(ctx context.Context, value int64) (*models.TokenBalance, error) {
	doc := &models.TokenBalance{
		ID:        models.TokenDocumentID,
		Balance:   value,
		UpdatedAt: time.Now(),
	}

	docAV, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balance: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.TokensTableName),
		Item:      docAV,
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to set balance in DynamoDB: %w", err)
	}

	return doc, nil
}
