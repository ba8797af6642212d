package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"slices"
)

// PublicKey is the canonical encoding of a curve point. Within a round,
// public keys identify group members and their order defines sign rules.
type PublicKey []byte

// NewPublicKeyFromBytes creates a PublicKey from a byte slice.
// This function makes a copy of the input data to ensure immutability.
func NewPublicKeyFromBytes(data []byte) PublicKey {
	pk := make([]byte, len(data))
	copy(pk, data)
	return PublicKey(pk)
}

// NewPublicKeyFromString creates a PublicKey from a hex-encoded string.
func NewPublicKeyFromString(data string) (PublicKey, error) {
	rawBytes, err := hex.DecodeString(data)
	if err != nil {
		return PublicKey{}, err
	}

	return NewPublicKeyFromBytes(rawBytes), nil
}

// Bytes returns the public key as a byte slice.
func (pk PublicKey) Bytes() []byte {
	return pk
}

// Equal compares two public keys for equality.
func (pk PublicKey) Equal(other PublicKey) bool {
	return subtle.ConstantTimeCompare(pk, other) == 1
}

// String returns a hex-encoded string representation of the public key.
// This is useful for logging and using as a map key.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk)
}

// MarshalText encodes the key as hex, so JSON and YAML carry hex strings.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText decodes a hex-encoded key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := NewPublicKeyFromString(string(text))
	if err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	*pk = parsed
	return nil
}

// PrivateKey is the canonical encoding of a secret scalar.
// It must never leave the client.
type PrivateKey []byte

// NewPrivateKeyFromBytes creates a PrivateKey from a byte slice.
// This function makes a copy of the input data to ensure immutability.
func NewPrivateKeyFromBytes(data []byte) PrivateKey {
	sk := make([]byte, len(data))
	copy(sk, data)
	return PrivateKey(sk)
}

// NewPrivateKeyFromString creates a PrivateKey from a hex-encoded string.
func NewPrivateKeyFromString(data string) (PrivateKey, error) {
	rawBytes, err := hex.DecodeString(data)
	if err != nil {
		return PrivateKey{}, err
	}
	return NewPrivateKeyFromBytes(rawBytes), nil
}

// Bytes returns the private key as a byte slice.
// This method should be used carefully as it exposes sensitive key material.
func (sk PrivateKey) Bytes() []byte {
	return sk
}

// String returns the hex encoding of the key.
func (sk PrivateKey) String() string {
	return hex.EncodeToString(sk)
}

// MarshalText encodes the key as hex.
func (sk PrivateKey) MarshalText() ([]byte, error) {
	return []byte(sk.String()), nil
}

// UnmarshalText decodes a hex-encoded key.
func (sk *PrivateKey) UnmarshalText(text []byte) error {
	parsed, err := NewPrivateKeyFromString(string(text))
	if err != nil {
		return fmt.Errorf("private key: %w", err)
	}
	*sk = parsed
	return nil
}

// KeyPair is a client's long-lived identity for secure aggregation.
type KeyPair struct {
	PublicKey  PublicKey  `json:"public_key"`
	PrivateKey PrivateKey `json:"private_key"`
}

// Validate checks that both halves decode on the curve and that the
// public key is the image of the private key.
func (kp KeyPair) Validate(params *CurveParameters) error {
	if err := params.Curve.ValidatePrivateKey(kp.PrivateKey); err != nil {
		return err
	}
	if err := params.Curve.ValidatePublicKey(kp.PublicKey); err != nil {
		return err
	}
	derived, err := params.Curve.PublicKey(kp.PrivateKey)
	if err != nil {
		return err
	}
	if !derived.Equal(kp.PublicKey) {
		return fmt.Errorf("%w: does not match private key", ErrInvalidPublicKey)
	}
	return nil
}

// SharedKey represents the canonical encoding of an ECDH shared point.
// It is never used as-is, only as input to HashToScalar.
type SharedKey []byte

// NewSharedKey creates a SharedKey from a byte slice.
// This function makes a copy of the input data to ensure immutability.
func NewSharedKey(data []byte) SharedKey {
	sk := make([]byte, len(data))
	copy(sk, data)
	return SharedKey(sk)
}

// Bytes returns a copy of the shared key.
func (sk SharedKey) Bytes() []byte {
	return slices.Clone(sk)
}

// Equal compares two shared keys in constant time.
func (sk SharedKey) Equal(other SharedKey) bool {
	return subtle.ConstantTimeCompare(sk, other) == 1
}
