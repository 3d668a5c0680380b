// Package config loads CLI configuration from a YAML file with environment
// overrides. The library packages take explicit options and do not read
// configuration themselves.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the receipts CLI.
type Config struct {
	// PrivateKey is a hex-encoded Ed25519 seed used for signing.
	PrivateKey string `yaml:"private_key"`
	// PublicKey is a hex-encoded Ed25519 public key used for verification.
	// Derived from PrivateKey when empty.
	PublicKey string `yaml:"public_key"`
	// DefaultAgentID stamps receipts that carry no explicit agent id.
	DefaultAgentID string `yaml:"default_agent_id"`
	// IncludeContent disables privacy mode: plaintext prompt/response are
	// embedded in created receipts.
	IncludeContent bool `yaml:"include_content"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads the optional YAML file at path, then applies environment
// overrides (TRUST_RECEIPTS_PRIVATE_KEY, TRUST_RECEIPTS_PUBLIC_KEY,
// TRUST_RECEIPTS_AGENT_ID, TRUST_RECEIPTS_INCLUDE_CONTENT, LOG_LEVEL).
// Environment wins over file.
func Load(path string) (*Config, error) {
	cfg := &Config{LogLevel: "INFO"}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("TRUST_RECEIPTS_PRIVATE_KEY"); v != "" {
		cfg.PrivateKey = v
	}
	if v := os.Getenv("TRUST_RECEIPTS_PUBLIC_KEY"); v != "" {
		cfg.PublicKey = v
	}
	if v := os.Getenv("TRUST_RECEIPTS_AGENT_ID"); v != "" {
		cfg.DefaultAgentID = v
	}
	if v := os.Getenv("TRUST_RECEIPTS_INCLUDE_CONTENT"); v != "" {
		cfg.IncludeContent = v == "true"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
