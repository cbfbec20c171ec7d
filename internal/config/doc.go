// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// and an optional .env file is loaded into the environment first. JSON is a subset
// of YAML, so a plain config.json with the same keys loads unchanged.
package config
