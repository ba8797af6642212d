package crypto

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrUnknownCurve is returned when a configured curve name has no backend.
	ErrUnknownCurve = errors.New("unknown curve")

	// ErrUnknownHash is returned when a configured hash name is not supported.
	ErrUnknownHash = errors.New("unknown hash function")

	// ErrInvalidPublicKey is returned for encodings that do not decode to a
	// usable group element.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidPrivateKey is returned for encodings that do not decode to a
	// non-zero scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// ArithmeticError reports a field operation on a value outside [0, n).
// It is raised with panic: validated inputs never produce one.
type ArithmeticError struct {
	Op    string
	Value *big.Int
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("scalar field %s: value %v out of range", e.Op, e.Value)
}
