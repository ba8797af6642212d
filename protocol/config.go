package protocol

import (
	"fmt"

	"github.com/pddisense/pdd-server-sub000/crypto"
)

// AggregationConfig provides the parameters every member of an aggregation
// round must share.
type AggregationConfig struct {
	// Curve names the group used for key pairs and ECDH.
	Curve string `json:"curve" yaml:"curve"`

	// Hash names the hash function used to derive blinding terms.
	Hash string `json:"hash" yaml:"hash"`

	// VocabularySize is the expected counter vector length. Zero disables the check.
	VocabularySize int `json:"vocabulary_size" yaml:"vocabulary_size"`

	// Parallelism bounds the number of peers processed concurrently when
	// generating blinding factors. Values below 2 run sequentially.
	Parallelism int `json:"parallelism" yaml:"parallelism"`
}

// DefaultAggregationConfig returns secp256k1/sha256 with sequential derivation.
func DefaultAggregationConfig() *AggregationConfig {
	return &AggregationConfig{
		Curve:       crypto.CurveSecp256k1,
		Hash:        crypto.HashSHA256,
		Parallelism: 1,
	}
}

// Validate checks the configuration without building parameters.
func (c *AggregationConfig) Validate() error {
	if c.VocabularySize < 0 {
		return fmt.Errorf("vocabulary_size must not be negative, got %d", c.VocabularySize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}

// Params builds the immutable curve parameters named by the configuration.
func (c *AggregationConfig) Params() (*crypto.CurveParameters, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return crypto.NewCurveParameters(c.Curve, c.Hash)
}

// NewEncryptor builds an Encryptor for the configuration.
func (c *AggregationConfig) NewEncryptor() (*Encryptor, error) {
	params, err := c.Params()
	if err != nil {
		return nil, err
	}
	return &Encryptor{
		Params:         params,
		Generator:      &BlindingGenerator{Params: params, Parallelism: c.Parallelism},
		VocabularySize: c.VocabularySize,
	}, nil
}
