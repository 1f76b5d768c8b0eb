package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// Reason identifies the specific validation failure.
type Reason string

const (
	ReasonIDRequired      Reason = "POKEMON_ID_REQUIRED"
	ReasonNameRequired    Reason = "POKEMON_NAME_REQUIRED"
	ReasonNameTooLong     Reason = "POKEMON_NAME_TOO_LONG"
	ReasonImageURLInvalid Reason = "POKEMON_IMAGE_URL_INVALID"
	ReasonPromptTooLong   Reason = "POKEMON_PROMPT_TOO_LONG"
	ReasonRarityInvalid   Reason = "POKEMON_RARITY_INVALID"
)

// Error is a validation failure with a machine-readable reason.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid creature item: %s", e.Reason)
}

// Rules carries the configurable limits applied to creature items.
type Rules struct {
	MaxNameLength   int
	MaxPromptLength int
	Rarities        []string
}

// ValidateItem normalizes and validates a candidate creature item. It returns
// a trimmed copy and never mutates its argument. Timestamps are left untouched;
// callers stamp them on store.
func (r Rules) ValidateItem(candidate models.CreatureItem) (models.CreatureItem, error) {
	item := candidate
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	item.Prompt = strings.TrimSpace(item.Prompt)
	item.Rarity = models.Rarity(strings.TrimSpace(string(item.Rarity)))
	item.ImageURL = strings.TrimSpace(item.ImageURL)

	if item.ID == "" {
		return models.CreatureItem{}, &Error{Reason: ReasonIDRequired}
	}
	if item.Name == "" {
		return models.CreatureItem{}, &Error{Reason: ReasonNameRequired}
	}
	// Limits count characters, not bytes, so multibyte names are not
	// penalized.
	if utf8.RuneCountInString(item.Name) > r.MaxNameLength {
		return models.CreatureItem{}, &Error{Reason: ReasonNameTooLong}
	}
	if !IsValidImageURL(item.ImageURL) {
		return models.CreatureItem{}, &Error{Reason: ReasonImageURLInvalid}
	}
	if item.Prompt != "" && utf8.RuneCountInString(item.Prompt) > r.MaxPromptLength {
		return models.CreatureItem{}, &Error{Reason: ReasonPromptTooLong}
	}
	if item.Rarity != "" && !r.rarityKnown(item.Rarity) {
		return models.CreatureItem{}, &Error{Reason: ReasonRarityInvalid}
	}

	return item, nil
}

func (r Rules) rarityKnown(rarity models.Rarity) bool {
	for _, known := range r.Rarities {
		if string(rarity) == known {
			return true
		}
	}
	return false
}

// IsValidImageURL accepts well-formed http(s) URLs and local blob references
// (blob: object URLs and inline data: URLs produced from base64 artifacts).
func IsValidImageURL(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "blob:") || strings.HasPrefix(value, "data:") {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// StampTimestamps fills in createdAt/updatedAt the way the store expects:
// createdAt is preserved when already set, updatedAt always moves forward.
func StampTimestamps(item *models.CreatureItem, now time.Time) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
}
