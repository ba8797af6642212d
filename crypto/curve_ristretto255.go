package crypto

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/bwesterb/go-ristretto"
)

// Ristretto255Curve implements Curve over the prime-order ristretto255 group.
// Points and scalars both use 32-byte encodings; scalars are little-endian.
type Ristretto255Curve struct{}

// NewRistretto255Curve returns the ristretto255 backend.
func NewRistretto255Curve() *Ristretto255Curve {
	return &Ristretto255Curve{}
}

func (c *Ristretto255Curve) Name() string { return CurveRistretto255 }

// Order is the same prime L as edwards25519; ristretto255 removes the cofactor.
func (c *Ristretto255Curve) Order() *big.Int { return new(big.Int).Set(ed25519Order) }

func (c *Ristretto255Curve) GenerateKey(r io.Reader) (KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	var wide [64]byte
	var s ristretto.Scalar
	for {
		if _, err := io.ReadFull(r, wide[:]); err != nil {
			return KeyPair{}, fmt.Errorf("generate ristretto255 key: %w", err)
		}
		s.SetReduced(&wide)
		if s.BigInt().Sign() != 0 {
			break
		}
	}

	var p ristretto.Point
	p.ScalarMultBase(&s)
	return KeyPair{PublicKey: PublicKey(p.Bytes()), PrivateKey: PrivateKey(s.Bytes())}, nil
}

func (c *Ristretto255Curve) PublicKey(sk PrivateKey) (PublicKey, error) {
	s, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	var p ristretto.Point
	p.ScalarMultBase(s)
	return PublicKey(p.Bytes()), nil
}

func (c *Ristretto255Curve) ValidatePublicKey(pk PublicKey) error {
	_, err := c.parsePublic(pk)
	return err
}

func (c *Ristretto255Curve) ValidatePrivateKey(sk PrivateKey) error {
	_, err := c.parsePrivate(sk)
	return err
}

func (c *Ristretto255Curve) ScalarMult(sk PrivateKey, peer PublicKey) (SharedKey, error) {
	s, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	p, err := c.parsePublic(peer)
	if err != nil {
		return nil, err
	}
	var shared ristretto.Point
	shared.ScalarMult(p, s)
	return NewSharedKey(shared.Bytes()), nil
}

func (c *Ristretto255Curve) parsePrivate(sk PrivateKey) (*ristretto.Scalar, error) {
	if len(sk) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidPrivateKey, len(sk))
	}
	var buf [32]byte
	copy(buf[:], sk.Bytes())
	var s ristretto.Scalar
	s.SetBytes(&buf)
	v := s.BigInt()
	// SetBytes reduces; a canonical encoding must round-trip unchanged.
	if v.Sign() == 0 || v.Cmp(ed25519Order) >= 0 || !bytes.Equal(s.Bytes(), sk) {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKey)
	}
	return &s, nil
}

func (c *Ristretto255Curve) parsePublic(pk PublicKey) (*ristretto.Point, error) {
	if len(pk) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidPublicKey, len(pk))
	}
	var buf [32]byte
	copy(buf[:], pk.Bytes())
	var p ristretto.Point
	if !p.SetBytes(&buf) {
		return nil, fmt.Errorf("%w: not a ristretto255 encoding", ErrInvalidPublicKey)
	}
	var zero ristretto.Point
	zero.SetZero()
	if p.Equals(&zero) {
		return nil, fmt.Errorf("%w: identity point", ErrInvalidPublicKey)
	}
	return &p, nil
}
