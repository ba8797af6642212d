package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pddisense/pdd-server-sub000/protocol"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration shared by the secagg commands.
//
//	aggregation:
//	  curve: "secp256k1"
//	  hash: "sha256"
//	  vocabulary_size: 0
//	  parallelism: 4
//	client:
//	  raw_collection: false
//	  secret_cache_size: 1024
//	keys:
//	  private_key: ""    # Hex-encoded, generates if empty
//	log:
//	  level: "info"
//	  format: "text"
type Config struct {
	Aggregation protocol.AggregationConfig `yaml:"aggregation"`
	Client      ClientConfig              `yaml:"client"`
	Keys        KeysConfig                `yaml:"keys"`
	Log         LogConfig                 `yaml:"log"`
}

// ClientConfig tunes the long-lived client.
type ClientConfig struct {
	RawCollection   bool   `yaml:"raw_collection"`
	SecretCacheSize uint32 `yaml:"secret_cache_size"`
}

// KeysConfig holds key material.
type KeysConfig struct {
	PrivateKey string `yaml:"private_key"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Aggregation: *protocol.DefaultAggregationConfig(),
		Client: ClientConfig{
			SecretCacheSize: 1024,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown fields are
// rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Aggregation.Validate(); err != nil {
		return nil, fmt.Errorf("aggregation: %w", err)
	}
	return cfg, nil
}
