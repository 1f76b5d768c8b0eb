package dynamodb

import (
	"context"
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

func TestSellItem(t *testing.T) {
	item := &models.CreatureItem{ID: "pokemon-1", Name: "Sparkfin"}
	balanceDoc := &models.TokenBalance{ID: models.TokenDocumentID, Balance: 90}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		sched := &recordingScheduler{}
		store := &Store{Client: mockClient, Scheduler: sched, TokensTableName: "tokens", ItemsTableName: "items"}

		itemAV, _ := attributevalue.MarshalMap(item)
		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		balance, sold, err := store.SellItem(context.Background(), "pokemon-1", 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(95), balance.Balance)
		assert.Equal(t, "Sparkfin", sold.Name)

		if assert.Len(t, sched.events, 1) {
			assert.Equal(t, "removed", sched.events[0].Action)
			assert.Equal(t, int64(95), *sched.events[0].Balance)
		}
		mockClient.AssertExpectations(t)
	})

	t.Run("Item Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, _, err := store.SellItem(context.Background(), "missing", 5)

		assert.ErrorIs(t, err, storage.ErrItemNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Item Deleted Concurrently", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		itemAV, _ := attributevalue.MarshalMap(item)
		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		})

		_, _, err := store.SellItem(context.Background(), "pokemon-1", 5)

		assert.ErrorIs(t, err, storage.ErrItemNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Balance Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		itemAV, _ := attributevalue.MarshalMap(item)
		balanceAV, _ := attributevalue.MarshalMap(balanceDoc)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			},
		})

		_, _, err := store.SellItem(context.Background(), "pokemon-1", 5)

		assert.ErrorIs(t, err, storage.ErrBalanceNotFound)
		mockClient.AssertExpectations(t)
	})
}
