package config

import (
	"strings"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultBridgeCoin         = "BTC"
	DefaultConcurrency        = 4
	DefaultRunTimeout         = 10 * time.Minute
	DefaultPublicURL          = "https://api.bittrex.com/api/v1.1"
	DefaultPrivateURL         = "https://api.bittrex.com/v3"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxRetries         = 3
	DefaultRetryBackoff       = 1 * time.Second
	DefaultFillMaxAttempts    = 10
	DefaultFillDelay          = 500 * time.Millisecond
	DefaultFillMaxDelay       = 10 * time.Second
	DefaultFillMultiplier     = 2.0
	DefaultFillResolveTimeout = 15 * time.Second
)

func (c *Config) applyDefaults() {
	if c.BridgeCoin == "" {
		c.BridgeCoin = DefaultBridgeCoin
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RunTimeout == 0 {
		c.RunTimeout = DefaultRunTimeout
	}

	// API defaults
	if c.API.PublicURL == "" {
		c.API.PublicURL = DefaultPublicURL
	}
	if c.API.PrivateURL == "" {
		c.API.PrivateURL = DefaultPrivateURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Fill defaults
	if c.Fill.MaxAttempts == 0 {
		c.Fill.MaxAttempts = DefaultFillMaxAttempts
	}
	if c.Fill.Delay == 0 {
		c.Fill.Delay = DefaultFillDelay
	}
	if c.Fill.MaxDelay == 0 {
		c.Fill.MaxDelay = DefaultFillMaxDelay
	}
	if c.Fill.Multiplier == 0 {
		c.Fill.Multiplier = DefaultFillMultiplier
	}
	if c.Fill.ResolveTimeout == 0 {
		c.Fill.ResolveTimeout = DefaultFillResolveTimeout
	}
}

// normalize upper-cases currency codes; the exchange's codes are case-sensitive.
func (c *Config) normalize() {
	c.FinalCoin = normalizeCoin(c.FinalCoin)
	c.BridgeCoin = normalizeCoin(c.BridgeCoin)

	ignored := make([]string, 0, len(c.IgnoredCoins))
	for _, coin := range c.IgnoredCoins {
		if coin = normalizeCoin(coin); coin != "" {
			ignored = append(ignored, coin)
		}
	}
	c.IgnoredCoins = ignored
}

func normalizeCoin(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
