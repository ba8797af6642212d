package crypto

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// ScalarField is the prime-order scalar field Z_n of a curve group.
// Blinding factors and masked counters are elements of this field.
// A ScalarField is immutable once constructed and safe for concurrent use.
type ScalarField struct {
	order    *big.Int
	byteSize int
}

// NewScalarField creates the field of integers modulo order.
// The order is copied so later mutation by the caller has no effect.
func NewScalarField(order *big.Int) *ScalarField {
	if order == nil || order.Sign() <= 0 {
		panic("crypto: scalar field order must be positive")
	}
	return &ScalarField{
		order:    new(big.Int).Set(order),
		byteSize: (order.BitLen() + 7) / 8,
	}
}

// Order returns a copy of the field order n.
func (f *ScalarField) Order() *big.Int {
	return new(big.Int).Set(f.order)
}

// ByteSize is the number of bytes needed to hold any field element.
func (f *ScalarField) ByteSize() int {
	return f.byteSize
}

// Zero returns a fresh additive identity.
func (f *ScalarField) Zero() *big.Int {
	return new(big.Int)
}

// FromUint64 maps a plain non-negative integer into the field.
// The decimal value of v is used as-is.
func (f *ScalarField) FromUint64(v uint64) *big.Int {
	x := new(big.Int).SetUint64(v)
	return x.Mod(x, f.order)
}

// Reduce returns x mod n as a new value. Negative inputs are mapped to
// their non-negative representative.
func (f *ScalarField) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.order)
}

// Contains reports whether 0 <= x < n.
func (f *ScalarField) Contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(f.order) < 0
}

// MustContain panics with an *ArithmeticError if x is not a reduced field
// element. Only values produced by validated inputs reach the arithmetic, so
// a failure here is a programming error.
func (f *ScalarField) MustContain(op string, x *big.Int) {
	if !f.Contains(x) {
		panic(&ArithmeticError{Op: op, Value: x})
	}
}

// Add performs l = (l + r) mod n in place and returns l.
func (f *ScalarField) Add(l, r *big.Int) *big.Int {
	f.MustContain("add", l)
	f.MustContain("add", r)
	return FieldAddInplace(l, r, f.order)
}

// Sub performs l = (l - r) mod n in place and returns l.
func (f *ScalarField) Sub(l, r *big.Int) *big.Int {
	f.MustContain("sub", l)
	f.MustContain("sub", r)
	return FieldSubInplace(l, r, f.order)
}

// EncodeDecimal returns the base-10 encoding of a field element.
func (f *ScalarField) EncodeDecimal(x *big.Int) string {
	f.MustContain("encode", x)
	return x.String()
}

// EncodeHex returns the fixed-width, zero-padded hex encoding of a field element.
func (f *ScalarField) EncodeHex(x *big.Int) string {
	f.MustContain("encode", x)
	return hex.EncodeToString(x.FillBytes(make([]byte, f.byteSize)))
}

// ParseDecimal decodes a base-10 field element, rejecting values outside [0, n).
func (f *ScalarField) ParseDecimal(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal scalar %q", s)
	}
	if !f.Contains(x) {
		return nil, fmt.Errorf("scalar %s out of field range", x)
	}
	return x, nil
}

// ParseHex decodes a hex field element, rejecting values outside [0, n).
func (f *ScalarField) ParseHex(s string) (*big.Int, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid hex scalar: %w", err)
	}
	x := new(big.Int).SetBytes(raw)
	if !f.Contains(x) {
		return nil, fmt.Errorf("scalar %s out of field range", x)
	}
	return x, nil
}

// FieldAddInplace performs modular addition in-place: l = (l + r) mod fieldOrder.
// Both operands must already be reduced. The result is stored in l and also returned.
func FieldAddInplace(l *big.Int, r *big.Int, fieldOrder *big.Int) *big.Int {
	l.Add(l, r)
	if l.Cmp(fieldOrder) >= 0 {
		l.Sub(l, fieldOrder)
	}
	return l
}

// FieldSubInplace performs modular subtraction in-place: l = (l - r) mod fieldOrder.
// Both operands must already be reduced. The result is stored in l and also returned.
func FieldSubInplace(l *big.Int, r *big.Int, fieldOrder *big.Int) *big.Int {
	l.Sub(l, r)
	if l.Sign() < 0 {
		l.Add(l, fieldOrder)
	}
	return l
}
