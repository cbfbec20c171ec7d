package config

import (
	"fmt"
	"net/url"
)

// ConfigError reports a missing or invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Field + " " + e.Reason
}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return &ConfigError{Field: "APIToken", Reason: "is required"}
	}
	if c.APISecret == "" {
		return &ConfigError{Field: "APISecret", Reason: "is required"}
	}
	if c.FinalCoin == "" {
		return &ConfigError{Field: "FinalCoin", Reason: "is required"}
	}
	if c.BridgeCoin == "" {
		return &ConfigError{Field: "BridgeCoin", Reason: "is required"}
	}

	if c.MinBalance.IsNegative() {
		return &ConfigError{Field: "MinBalance", Reason: fmt.Sprintf("must be >= 0, got %s", c.MinBalance)}
	}
	if c.Concurrency < 1 {
		return &ConfigError{Field: "Concurrency", Reason: "must be >= 1"}
	}
	if c.RunTimeout < 0 {
		return &ConfigError{Field: "RunTimeout", Reason: "must be >= 0"}
	}

	if err := validateURL("API.PublicURL", c.API.PublicURL); err != nil {
		return err
	}
	if err := validateURL("API.PrivateURL", c.API.PrivateURL); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "API.Timeout", Reason: "must be > 0"}
	}
	if c.API.MaxRetries < 0 {
		return &ConfigError{Field: "API.MaxRetries", Reason: "must be >= 0"}
	}
	if c.API.RetryBackoff < 0 {
		return &ConfigError{Field: "API.RetryBackoff", Reason: "must be >= 0"}
	}

	if c.Fill.MaxAttempts < 1 {
		return &ConfigError{Field: "Fill.MaxAttempts", Reason: "must be >= 1"}
	}
	if c.Fill.Delay < 0 {
		return &ConfigError{Field: "Fill.Delay", Reason: "must be >= 0"}
	}
	if c.Fill.MaxDelay < c.Fill.Delay {
		return &ConfigError{
			Field:  "Fill.MaxDelay",
			Reason: fmt.Sprintf("(%s) cannot be less than Fill.Delay (%s)", c.Fill.MaxDelay, c.Fill.Delay),
		}
	}
	if c.Fill.Multiplier < 1 {
		return &ConfigError{Field: "Fill.Multiplier", Reason: "must be >= 1"}
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be an http(s) URL, got %q", raw)}
	}
	return nil
}
