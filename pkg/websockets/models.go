package websockets

import (
	"time"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeInventoryUpdate is for messages about added or removed items.
	MessageTypeInventoryUpdate MessageType = "inventoryUpdate"
	// MessageTypeBalanceUpdate is for messages about token balance changes.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
	// MessageTypeGenerationUpdate is for messages about generation job status
	// transitions.
	MessageTypeGenerationUpdate MessageType = "generationUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// InventoryUpdatePayload is the payload for an inventoryUpdate message.
type InventoryUpdatePayload struct {
	ItemID     string    `json:"item_id"`
	Action     string    `json:"action"`
	Balance    *int64    `json:"balance,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	NewBalance int64     `json:"new_balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GenerationUpdatePayload is the payload for a generationUpdate message.
type GenerationUpdatePayload struct {
	JobID      string           `json:"job_id,omitempty"`
	Status     models.JobStatus `json:"status"`
	OccurredAt time.Time        `json:"occurred_at"`
}
