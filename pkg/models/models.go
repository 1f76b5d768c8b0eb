package models

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TokenDocumentID is the fixed key of the singleton balance document in the
// tokens table. Exactly one balance record exists per deployment.
const TokenDocumentID = "balance"

// JobStatus defines the possible states of a remote generation job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobCanceled  JobStatus = "canceled"
)

// Succeeded reports whether the job finished successfully.
func (s JobStatus) Succeeded() bool { return s == JobSucceeded }

// Terminal reports whether no further status transitions can occur.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobSucceeded, JobFailed, JobCanceled:
		return true
	}
	return false
}

// Rarity is the rarity tier stamped on a generated creature.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// TokenBalance is the singleton token-balance document.
// It is created on first access and mutated only through ledger operations or
// the store's atomic trade transactions.
type TokenBalance struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// CreatureItem represents a generated creature card owned by the user.
// It includes dynamodbav tags for marshalling.
type CreatureItem struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Name      string    `json:"name" dynamodbav:"name"`
	ImageURL  string    `json:"imageUrl" dynamodbav:"image_url"`
	Prompt    string    `json:"prompt,omitempty" dynamodbav:"prompt,omitempty"`
	Rarity    Rarity    `json:"rarity,omitempty" dynamodbav:"rarity,omitempty"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// Snapshot is the portable export form of the whole database.
type Snapshot struct {
	Tokens   *TokenBalance  `json:"tokens"`
	Pokemons []CreatureItem `json:"pokemons"`
}

// ChangeEventType defines the kind of a change notification.
type ChangeEventType string

const (
	// EventInventoryUpdate signals that an item was added or removed.
	EventInventoryUpdate ChangeEventType = "inventoryUpdate"
	// EventBalanceUpdate signals that the token balance changed.
	EventBalanceUpdate ChangeEventType = "balanceUpdate"
	// EventGenerationUpdate signals that an in-flight generation job changed
	// status.
	EventGenerationUpdate ChangeEventType = "generationUpdate"
)

// ChangeEvent is broadcast to subscribed clients after a committed mutation so
// a UI can refresh without re-polling.
type ChangeEvent struct {
	ID         openapi_types.UUID `json:"id"`
	Type       ChangeEventType    `json:"type"`
	ItemID     string             `json:"item_id,omitempty"`
	Action     string             `json:"action,omitempty"`
	Balance    *int64             `json:"balance,omitempty"`
	JobID      string             `json:"job_id,omitempty"`
	Status     JobStatus          `json:"status,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}
