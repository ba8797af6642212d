package protocol

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/pddisense/pdd-server-sub000/crypto"
)

// CounterVector holds one non-negative count per tracked vocabulary entry.
type CounterVector []uint64

// EncryptedVector holds (counter[i] + blinding[i]) mod n per index. It is
// the only counter data that leaves the client.
type EncryptedVector []*big.Int

// Strings returns the decimal encoding of every element.
func (v EncryptedVector) Strings() []string {
	res := make([]string, len(v))
	for i, x := range v {
		res[i] = x.String()
	}
	return res
}

// HexStrings returns the fixed-width hex encoding of every element.
func (v EncryptedVector) HexStrings(field *crypto.ScalarField) []string {
	res := make([]string, len(v))
	for i, x := range v {
		res[i] = field.EncodeHex(x)
	}
	return res
}

// ParseCounters converts textual counters into a CounterVector.
// Negative, fractional or otherwise non-integer values are rejected.
func ParseCounters(values []string) (CounterVector, error) {
	counters := make(CounterVector, len(values))
	for i, v := range values {
		c, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &MalformedInputError{Field: "counters", Reason: fmt.Sprintf("index %d: %q is not a non-negative integer", i, v), Err: err}
		}
		counters[i] = c
	}
	return counters, nil
}

// Encryptor masks counter vectors for one set of curve parameters.
type Encryptor struct {
	Params    *crypto.CurveParameters
	Generator *BlindingGenerator

	// VocabularySize is the expected counter vector length. Zero disables the check.
	VocabularySize int
}

// NewEncryptor returns a sequential Encryptor without a vocabulary check.
func NewEncryptor(params *crypto.CurveParameters) *Encryptor {
	return &Encryptor{
		Params:    params,
		Generator: &BlindingGenerator{Params: params},
	}
}

// EncryptCounters masks counters for the given round.
//
// All inputs are validated before any cryptographic work. If the key pair's
// public key is not in the group a *GroupMembershipError wrapping
// ErrNotInGroup is returned. No partial result is ever returned.
//
// A nil secrets derives every pairwise secret directly from kp.
func (e *Encryptor) EncryptCounters(secrets SecretSource, info RoundInfo, kp crypto.KeyPair, counters CounterVector) (EncryptedVector, error) {
	if err := e.validateCounters(counters); err != nil {
		return nil, err
	}
	if err := info.Group.Validate(e.Params); err != nil {
		return nil, err
	}
	if err := kp.Validate(e.Params); err != nil {
		return nil, &MalformedInputError{Field: "key pair", Reason: "invalid", Err: err}
	}

	clientIndex := info.Group.IndexOf(kp.PublicKey)
	if clientIndex < 0 {
		return nil, &GroupMembershipError{Round: info.Round}
	}

	if secrets == nil {
		secrets = &DirectSecrets{Params: e.Params, Private: kp.PrivateKey}
	}
	blinding, err := e.Generator.Generate(secrets, info.Group, clientIndex, len(counters), info.Round)
	if err != nil {
		return nil, fmt.Errorf("generate blinding factors: %w", err)
	}

	encrypted := make(EncryptedVector, len(counters))
	for i, c := range counters {
		encrypted[i] = e.Params.Field.Add(blinding[i], e.Params.Field.FromUint64(c))
	}
	return encrypted, nil
}

func (e *Encryptor) validateCounters(counters CounterVector) error {
	if len(counters) == 0 {
		return &MalformedInputError{Field: "counters", Reason: "empty vector"}
	}
	if e.VocabularySize > 0 && len(counters) != e.VocabularySize {
		return &MalformedInputError{Field: "counters", Reason: fmt.Sprintf("length %d does not match vocabulary size %d", len(counters), e.VocabularySize)}
	}
	return nil
}

// EncryptCounters masks counters for one round and returns the decimal
// encodings to transmit. It derives secrets directly and runs sequentially.
func EncryptCounters(params *crypto.CurveParameters, group Group, round Round, kp crypto.KeyPair, counters CounterVector) ([]string, error) {
	encrypted, err := NewEncryptor(params).EncryptCounters(nil, RoundInfo{Round: round, Group: group}, kp, counters)
	if err != nil {
		return nil, err
	}
	return encrypted.Strings(), nil
}
