package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage/dynamodb/mocks"
)

func TestExport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		balanceAV, _ := attributevalue.MarshalMap(&models.TokenBalance{ID: models.TokenDocumentID, Balance: 90})
		itemAV, _ := attributevalue.MarshalMap(&models.CreatureItem{ID: "pokemon-1", Name: "Sparkfin"})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: balanceAV}, nil)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{itemAV}}, nil)

		snapshot, err := store.Export(context.Background())

		require.NoError(t, err)
		require.NotNil(t, snapshot.Tokens)
		assert.Equal(t, int64(90), snapshot.Tokens.Balance)
		require.Len(t, snapshot.Pokemons, 1)
		assert.Equal(t, "Sparkfin", snapshot.Pokemons[0].Name)
	})

	t.Run("Missing Balance Exports Nil Tokens", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{}, nil)

		snapshot, err := store.Export(context.Background())

		require.NoError(t, err)
		assert.Nil(t, snapshot.Tokens)
	})
}

func TestImport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.Import(context.Background(), &models.Snapshot{
			Tokens: &models.TokenBalance{ID: models.TokenDocumentID, Balance: 50},
			Pokemons: []models.CreatureItem{
				{ID: "pokemon-1", Name: "Sparkfin"},
				{ID: "pokemon-2", Name: "Mossling"},
			},
		})

		assert.NoError(t, err)
		// One write for the balance document, one per item.
		mockClient.AssertNumberOfCalls(t, "PutItem", 3)
	})

	t.Run("Nil Snapshot", func(t *testing.T) {
		store := &Store{Client: new(mocks.DynamoDBAPI)}
		assert.Error(t, store.Import(context.Background(), nil))
	})

	t.Run("No Tokens Section", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TokensTableName: "tokens", ItemsTableName: "items"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.Import(context.Background(), &models.Snapshot{
			Pokemons: []models.CreatureItem{{ID: "pokemon-1"}},
		})

		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutItem", 1)
	})
}
