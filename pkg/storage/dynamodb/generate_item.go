package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
)

// GenerateItem atomically debits the generation cost from the balance document
// and stores the new creature item. Either both writes commit or neither does.
func (s *Store) GenerateItem(ctx context.Context, item *models.CreatureItem, cost int64) (*models.TokenBalance, error) {
	// 1. Read the current balance so the debit result can be returned without
	// a second round trip. The conditional update below still guards the debit.
	balance, err := s.GetBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for generation: %w", err)
	}

	// 2. Complete the item with server-side timestamps.
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	itemAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	costAV, err := attributevalue.Marshal(cost)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cost: %w", err)
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	// 3. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the balance document.
				Update: &types.Update{
					TableName: aws.String(s.TokensTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: models.TokenDocumentID},
					},
					UpdateExpression:    aws.String("SET balance = balance - :cost, updated_at = :now"),
					ConditionExpression: aws.String("balance >= :cost"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cost": costAV,
						":now":  nowAV,
					},
				},
			},
			{
				// Operation 2: Create the new item record.
				Put: &types.Put{
					TableName:           aws.String(s.ItemsTableName),
					Item:                itemAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for i, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					if i == 0 {
						return nil, storage.ErrInsufficientTokens
					}
					return nil, storage.ErrItemExists
				}
			}
		}
		return nil, fmt.Errorf("failed to execute generation transaction: %w", err)
	}

	result := &models.TokenBalance{
		ID:        models.TokenDocumentID,
		Balance:   balance.Balance - cost,
		UpdatedAt: now,
	}

	// 5. If the database transaction was successful, enqueue a change event.
	if s.Scheduler != nil {
		event := &models.ChangeEvent{
			ID:         openapi_types.UUID(uuid.New()),
			Type:       models.EventInventoryUpdate,
			ItemID:     item.ID,
			Action:     "added",
			Balance:    &result.Balance,
			OccurredAt: now,
		}
		if err := s.Scheduler.ScheduleEvent(ctx, event); err != nil {
			log.Printf("CRITICAL: item %s generated but change event failed to enqueue: %v", item.ID, err)
		}
	}

	return result, nil
}
