package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root configuration for a liquidation run.
type Config struct {
	APIToken     string          `yaml:"APIToken"`     // API key (Api-Key header)
	APISecret    string          `yaml:"APISecret"`    // HMAC secret paired with APIToken
	SubaccountID string          `yaml:"SubaccountID"` // Optional subaccount to trade on
	FinalCoin    string          `yaml:"FinalCoin"`    // Liquidation target currency
	BridgeCoin   string          `yaml:"BridgeCoin"`   // Intermediate currency for two-leg routes
	IgnoredCoins []string        `yaml:"IgnoredCoins"` // Currencies never sold
	MinBalance   decimal.Decimal `yaml:"MinBalance"`   // Dust threshold; smaller balances are skipped
	Concurrency  int             `yaml:"Concurrency"`  // Coins liquidated in parallel
	RunTimeout   time.Duration   `yaml:"RunTimeout"`   // Deadline for the whole run
	DryRun       bool            `yaml:"DryRun"`       // Plan and estimate only, submit nothing
	API          APIConfig       `yaml:"API"`
	Fill         FillConfig      `yaml:"Fill"`
}

// APIConfig holds Bittrex API settings.
type APIConfig struct {
	PublicURL    string        `yaml:"PublicURL"`  // v1.1 base URL for market data
	PrivateURL   string        `yaml:"PrivateURL"` // v3 base URL for balances and orders
	Timeout      time.Duration `yaml:"Timeout"`    // Per-call HTTP timeout
	MaxRetries   int           `yaml:"MaxRetries"` // Retries for idempotent GETs
	RetryBackoff time.Duration `yaml:"RetryBackoff"`
}

// FillConfig holds the order fill-confirmation policy.
type FillConfig struct {
	MaxAttempts    int           `yaml:"MaxAttempts"` // Status polls per leg before giving up
	Delay          time.Duration `yaml:"Delay"`       // Wait before the first poll
	MaxDelay       time.Duration `yaml:"MaxDelay"`    // Upper bound on the wait between polls
	Multiplier     float64       `yaml:"Multiplier"`  // Growth factor applied to Delay after each poll
	ResolveTimeout time.Duration `yaml:"ResolveTimeout"`
}
