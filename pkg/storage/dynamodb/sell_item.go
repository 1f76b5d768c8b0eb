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

// SellItem atomically deletes a creature item and credits the resale reward to
// the balance document. Either both writes commit or neither does.
func (s *Store) SellItem(ctx context.Context, id string, reward int64) (*models.TokenBalance, *models.CreatureItem, error) {
	// 1. Read the item so the sold record can be returned to the caller.
	sold, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	balance, err := s.GetBalance(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get balance for sale: %w", err)
	}

	now := time.Now()

	rewardAV, err := attributevalue.Marshal(reward)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal reward: %w", err)
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	// 2. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Delete the item record.
				Delete: &types.Delete{
					TableName: aws.String(s.ItemsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: id},
					},
					ConditionExpression: aws.String("attribute_exists(id)"),
				},
			},
			{
				// Operation 2: Credit the balance document.
				Update: &types.Update{
					TableName: aws.String(s.TokensTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: models.TokenDocumentID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :reward, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":reward": rewardAV,
						":now":    nowAV,
					},
				},
			},
		},
	}

	// 3. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for i, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					if i == 0 {
						return nil, nil, storage.ErrItemNotFound
					}
					return nil, nil, storage.ErrBalanceNotFound
				}
			}
		}
		return nil, nil, fmt.Errorf("failed to execute sale transaction: %w", err)
	}

	result := &models.TokenBalance{
		ID:        models.TokenDocumentID,
		Balance:   balance.Balance + reward,
		UpdatedAt: now,
	}

	// 4. If the database transaction was successful, enqueue a change event.
	if s.Scheduler != nil {
		event := &models.ChangeEvent{
			ID:         openapi_types.UUID(uuid.New()),
			Type:       models.EventInventoryUpdate,
			ItemID:     id,
			Action:     "removed",
			Balance:    &result.Balance,
			OccurredAt: now,
		}
		if err := s.Scheduler.ScheduleEvent(ctx, event); err != nil {
			log.Printf("CRITICAL: item %s sold but change event failed to enqueue: %v", id, err)
		}
	}

	return result, sold, nil
}
