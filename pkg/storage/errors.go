package storage

import "errors"

// ErrInsufficientTokens is returned when the balance cannot cover a generation charge.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// ErrItemNotFound is returned when a creature item does not exist.
var ErrItemNotFound = errors.New("pokemon not found")

// ErrItemExists is returned when a creature item with the same id already exists.
var ErrItemExists = errors.New("pokemon already exists")

// ErrBalanceNotFound is returned when the singleton balance document has not been created yet.
var ErrBalanceNotFound = errors.New("token balance not found")
