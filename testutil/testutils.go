package testutil

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pddisense/pdd-server-sub000/crypto"
	"github.com/pddisense/pdd-server-sub000/protocol"
	"github.com/stretchr/testify/require"
)

// =====================================
// Configuration Generators
// =====================================

// TestConfigOption is a function that modifies an AggregationConfig
type TestConfigOption func(*protocol.AggregationConfig)

// WithCurve sets the curve name
func WithCurve(curve string) TestConfigOption {
	return func(cfg *protocol.AggregationConfig) {
		cfg.Curve = curve
	}
}

// WithHash sets the hash name
func WithHash(hash string) TestConfigOption {
	return func(cfg *protocol.AggregationConfig) {
		cfg.Hash = hash
	}
}

// WithVocabularySize sets the expected counter vector length
func WithVocabularySize(size int) TestConfigOption {
	return func(cfg *protocol.AggregationConfig) {
		cfg.VocabularySize = size
	}
}

// WithParallelism sets the peer derivation parallelism
func WithParallelism(n int) TestConfigOption {
	return func(cfg *protocol.AggregationConfig) {
		cfg.Parallelism = n
	}
}

// NewTestConfig creates an aggregation configuration with default values
// that can be customized using options
func NewTestConfig(options ...TestConfigOption) *protocol.AggregationConfig {
	cfg := protocol.DefaultAggregationConfig()
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

// =====================================
// Group Generators
// =====================================

// TestGroup is a set of members sharing one round.
type TestGroup struct {
	Params   *crypto.CurveParameters
	KeyPairs []crypto.KeyPair
	Group    protocol.Group
}

// NewTestGroup generates n fresh key pairs and the group in generation order.
func NewTestGroup(t testing.TB, params *crypto.CurveParameters, n int) *TestGroup {
	t.Helper()
	tg := &TestGroup{Params: params}
	for i := 0; i < n; i++ {
		kp, err := crypto.GenerateKeyPair(params, nil)
		require.NoError(t, err)
		tg.KeyPairs = append(tg.KeyPairs, kp)
		tg.Group = append(tg.Group, kp.PublicKey)
	}
	return tg
}

// RoundInfo returns the round input shared by all members.
func (tg *TestGroup) RoundInfo(round protocol.Round) protocol.RoundInfo {
	return protocol.RoundInfo{Round: round, Group: tg.Group}
}

// RandomCounters returns n vectors of the given length with small counts.
func RandomCounters(rng *rand.Rand, n, length int) []protocol.CounterVector {
	res := make([]protocol.CounterVector, n)
	for i := range res {
		res[i] = make(protocol.CounterVector, length)
		for j := range res[i] {
			res[i][j] = uint64(rng.Intn(1000))
		}
	}
	return res
}

// =====================================
// Aggregation Simulation
// =====================================

// SumVectors adds vectors element-wise mod n, the way a server combines
// the masked vectors of a group.
func SumVectors(field *crypto.ScalarField, vectors ...[]*big.Int) []*big.Int {
	if len(vectors) == 0 {
		return nil
	}
	sums := make([]*big.Int, len(vectors[0]))
	for i := range sums {
		sums[i] = field.Zero()
		for _, v := range vectors {
			field.Add(sums[i], v[i])
		}
	}
	return sums
}

// SumDecimalVectors parses decimal scalar vectors and sums them mod n.
func SumDecimalVectors(t testing.TB, field *crypto.ScalarField, vectors ...[]string) []*big.Int {
	t.Helper()
	parsed := make([][]*big.Int, len(vectors))
	for i, v := range vectors {
		parsed[i] = make([]*big.Int, len(v))
		for j, s := range v {
			x, err := field.ParseDecimal(s)
			require.NoError(t, err)
			parsed[i][j] = x
		}
	}
	return SumVectors(field, parsed...)
}

// SumCounters adds plain counter vectors element-wise.
func SumCounters(vectors ...protocol.CounterVector) []*big.Int {
	if len(vectors) == 0 {
		return nil
	}
	sums := make([]*big.Int, len(vectors[0]))
	for i := range sums {
		sums[i] = new(big.Int)
		for _, v := range vectors {
			sums[i].Add(sums[i], new(big.Int).SetUint64(v[i]))
		}
	}
	return sums
}
