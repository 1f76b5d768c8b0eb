package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage"
	"github.com/pokeforge/pokeforge/pkg/storage/dynamodb/mocks"
)

type recordingScheduler struct {
	events []*models.ChangeEvent
}

func (r *recordingScheduler) ScheduleEvent(_ context.Context, event *models.ChangeEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestGenerateItem(t *testing.T) {
	item := &models.CreatureItem{ID: "pokemon-1", Name: "Sparkfin", ImageURL: "https://cdn.example.com/p.png"}
	balanceDoc := &models.TokenBalance{ID: models.TokenDocumentID, Balance: 100}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		sched := &recordingScheduler{}
		store := &Store{Client: mockClient, Scheduler: sched, TokensTableName: "tokens", ItemsTableName: "items"}

		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		result, err := store.GenerateItem(context.Background(), item, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(90), result.Balance)
		assert.False(t, item.CreatedAt.IsZero())

		if assert.Len(t, sched.events, 1) {
			assert.Equal(t, models.EventInventoryUpdate, sched.events[0].Type)
			assert.Equal(t, "added", sched.events[0].Action)
			assert.Equal(t, int64(90), *sched.events[0].Balance)
		}
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Tokens", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		balanceAV, _ := attributevalue.MarshalMap(&models.TokenBalance{ID: models.TokenDocumentID, Balance: 5})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		})

		_, err := store.GenerateItem(context.Background(), &models.CreatureItem{ID: "pokemon-1"}, 10)

		assert.ErrorIs(t, err, storage.ErrInsufficientTokens)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Item", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			},
		})

		_, err := store.GenerateItem(context.Background(), &models.CreatureItem{ID: "pokemon-1"}, 10)

		assert.ErrorIs(t, err, storage.ErrItemExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		_, err := store.GenerateItem(context.Background(), &models.CreatureItem{ID: "pokemon-1"}, 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute generation transaction")
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Balance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GenerateItem(context.Background(), &models.CreatureItem{ID: "pokemon-1"}, 10)

		assert.ErrorIs(t, err, storage.ErrBalanceNotFound)
		mockClient.AssertExpectations(t)
	})
}
