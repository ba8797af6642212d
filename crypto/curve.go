package crypto

import (
	"fmt"
	"io"
	"math/big"
)

// Curve names accepted in configuration.
const (
	CurveSecp256k1    = "secp256k1"
	CurveEdwards25519 = "edwards25519"
	CurveRistretto255 = "ristretto255"
)

// Curve is a prime-order group used for ECDH between group members.
// Every member of a round must use the same Curve.
type Curve interface {
	// Name returns the configuration name of the curve.
	Name() string

	// Order returns the order n of the group (and of its scalar field).
	Order() *big.Int

	// GenerateKey draws a uniformly random non-zero scalar from rand and
	// returns it with its public point.
	GenerateKey(rand io.Reader) (KeyPair, error)

	// PublicKey computes the generator multiplied by the private scalar.
	PublicKey(sk PrivateKey) (PublicKey, error)

	// ValidatePublicKey checks that pk decodes to a non-identity group element.
	ValidatePublicKey(pk PublicKey) error

	// ValidatePrivateKey checks that sk decodes to a non-zero scalar.
	ValidatePrivateKey(sk PrivateKey) error

	// ScalarMult multiplies the peer point by the private scalar and
	// returns the canonical encoding of the product.
	ScalarMult(sk PrivateKey, peer PublicKey) (SharedKey, error)
}

// CurveByName resolves a configured curve name to its backend.
func CurveByName(name string) (Curve, error) {
	switch name {
	case CurveSecp256k1, "":
		return NewSecp256k1Curve(), nil
	case CurveEdwards25519:
		return NewEdwards25519Curve(), nil
	case CurveRistretto255:
		return NewRistretto255Curve(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
}

// SupportedCurves lists the curve names CurveByName accepts.
func SupportedCurves() []string {
	return []string{CurveSecp256k1, CurveEdwards25519, CurveRistretto255}
}
