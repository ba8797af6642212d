// Package common provides shared utilities for the secagg CLI commands.
//
// This package contains helper functions used by the command binaries to
// reduce code duplication:
//
//   - YAML configuration loading with defaults
//   - Key loading and generation on the configured curve
//   - Structured logger construction
package common

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pddisense/pdd-server-sub000/crypto"
)

// LoadOrGenerateKeyPair loads a key pair from a hex private key, or generates
// a new one if hexKey is empty. The public key is derived on the configured
// curve.
func LoadOrGenerateKeyPair(params *crypto.CurveParameters, hexKey string) (crypto.KeyPair, error) {
	if hexKey == "" {
		return crypto.GenerateKeyPair(params, nil)
	}
	priv, err := crypto.NewPrivateKeyFromString(strings.TrimSpace(hexKey))
	if err != nil {
		return crypto.KeyPair{}, fmt.Errorf("invalid hex: %w", err)
	}
	pub, err := params.Curve.PublicKey(priv)
	if err != nil {
		return crypto.KeyPair{}, fmt.Errorf("derive public key: %w", err)
	}
	return crypto.KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// NewLogger creates a slog logger writing to w. Format is "text" or "json";
// level is one of debug, info, warn, error.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	if level == "" {
		level = "info"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
