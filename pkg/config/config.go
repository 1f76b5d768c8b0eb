package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Balance modes select how the ledger loads and persists the token balance.
const (
	BalanceModeLocal  = "local"
	BalanceModeRemote = "remote"
)

// Generation protocols select which remote client implementation is built.
const (
	ProtocolJob  = "job"
	ProtocolSync = "sync"
)

// Trade modes select how a generation or resale is committed: through the
// in-memory ledger with separate item writes, or as a single storage
// transaction that moves tokens and the item together.
const (
	TradeModeLedger = "ledger"
	TradeModeAtomic = "atomic"
)

// Config holds every externally configurable knob of the service: the token
// economy constants, validation limits, storage table names, and the remote
// generation API settings.
type Config struct {
	// Token economy.
	GenerationCost  int64
	ResaleReward    int64
	StartingBalance int64

	// Creature validation.
	MaxNameLength   int
	MaxPromptLength int
	Rarities        []string

	// Storage.
	TokensTableName      string
	ItemsTableName       string
	ConnectionsTableName string

	// Event fanout. Empty disables scheduling.
	QueueURL string

	// Remote generation API.
	GenerationAPIBaseURL string
	GenerationAPIToken   string
	GenerationProtocol   string
	PollInterval         time.Duration
	MaxPollAttempts      int
	RequestTimeout       time.Duration

	// Ledger balance source.
	BalanceMode string

	// Trade commit strategy.
	TradeMode string

	// Maintenance.
	PurgeKeepLast int

	HTTPPort string
}

// Load reads configuration from the environment, applying defaults for every
// economy constant so the service runs out of the box.
func Load() (*Config, error) {
	cfg := &Config{
		GenerationCost:  getEnvInt64("POKEFORGE_GENERATION_COST", 10),
		ResaleReward:    getEnvInt64("POKEFORGE_RESALE_REWARD", 5),
		StartingBalance: getEnvInt64("POKEFORGE_STARTING_BALANCE", 100),

		MaxNameLength:   getEnvInt("POKEFORGE_MAX_NAME_LENGTH", 50),
		MaxPromptLength: getEnvInt("POKEFORGE_MAX_PROMPT_LENGTH", 300),
		Rarities:        getEnvList("POKEFORGE_RARITIES", []string{"common", "uncommon", "rare", "epic", "legendary"}),

		TokensTableName:      getEnv("DYNAMODB_TOKENS_TABLE_NAME", "pokeforge-tokens"),
		ItemsTableName:       getEnv("DYNAMODB_ITEMS_TABLE_NAME", "pokeforge-items"),
		ConnectionsTableName: getEnv("DYNAMODB_CONNECTIONS_TABLE_NAME", "pokeforge-connections"),

		QueueURL: os.Getenv("SQS_QUEUE_URL"),

		GenerationAPIBaseURL: os.Getenv("GENERATION_API_BASE_URL"),
		GenerationAPIToken:   os.Getenv("GENERATION_API_TOKEN"),
		GenerationProtocol:   getEnv("GENERATION_PROTOCOL", ProtocolJob),
		PollInterval:         getEnvDuration("GENERATION_POLL_INTERVAL", 1500*time.Millisecond),
		MaxPollAttempts:      getEnvInt("GENERATION_MAX_POLL_ATTEMPTS", 30),
		RequestTimeout:       getEnvDuration("GENERATION_REQUEST_TIMEOUT", 30*time.Second),

		BalanceMode: getEnv("POKEFORGE_BALANCE_MODE", BalanceModeLocal),
		TradeMode:   getEnv("POKEFORGE_TRADE_MODE", TradeModeLedger),

		PurgeKeepLast: getEnvInt("POKEFORGE_PURGE_KEEP_LAST", 100),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
	}

	if cfg.GenerationAPIBaseURL == "" {
		return nil, fmt.Errorf("missing required env: GENERATION_API_BASE_URL")
	}
	if cfg.GenerationProtocol != ProtocolJob && cfg.GenerationProtocol != ProtocolSync {
		return nil, fmt.Errorf("invalid GENERATION_PROTOCOL %q (job|sync)", cfg.GenerationProtocol)
	}
	if cfg.BalanceMode != BalanceModeLocal && cfg.BalanceMode != BalanceModeRemote {
		return nil, fmt.Errorf("invalid POKEFORGE_BALANCE_MODE %q (local|remote)", cfg.BalanceMode)
	}
	if cfg.TradeMode != TradeModeLedger && cfg.TradeMode != TradeModeAtomic {
		return nil, fmt.Errorf("invalid POKEFORGE_TRADE_MODE %q (ledger|atomic)", cfg.TradeMode)
	}
	if cfg.GenerationCost < 0 || cfg.ResaleReward < 0 || cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("token economy constants must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
