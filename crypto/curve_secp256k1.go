package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1Curve implements Curve over secp256k1.
// Public keys and shared points use the 33-byte compressed SEC encoding,
// private keys the 32-byte big-endian scalar encoding.
type Secp256k1Curve struct {
	order *big.Int
}

// NewSecp256k1Curve returns the secp256k1 backend.
func NewSecp256k1Curve() *Secp256k1Curve {
	return &Secp256k1Curve{order: new(big.Int).Set(secp256k1.S256().Params().N)}
}

func (c *Secp256k1Curve) Name() string { return CurveSecp256k1 }

func (c *Secp256k1Curve) Order() *big.Int { return new(big.Int).Set(c.order) }

func (c *Secp256k1Curve) GenerateKey(r io.Reader) (KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	sk, err := secp256k1.GeneratePrivateKeyFromRand(r)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate secp256k1 key: %w", err)
	}
	return KeyPair{
		PublicKey:  PublicKey(sk.PubKey().SerializeCompressed()),
		PrivateKey: PrivateKey(sk.Serialize()),
	}, nil
}

func (c *Secp256k1Curve) PublicKey(sk PrivateKey) (PublicKey, error) {
	priv, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	return PublicKey(priv.PubKey().SerializeCompressed()), nil
}

func (c *Secp256k1Curve) ValidatePublicKey(pk PublicKey) error {
	_, err := c.parsePublic(pk)
	return err
}

func (c *Secp256k1Curve) ValidatePrivateKey(sk PrivateKey) error {
	_, err := c.parsePrivate(sk)
	return err
}

func (c *Secp256k1Curve) ScalarMult(sk PrivateKey, peer PublicKey) (SharedKey, error) {
	priv, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	pub, err := c.parsePublic(peer)
	if err != nil {
		return nil, err
	}

	var point, result secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &result)
	if result.Z.IsZero() {
		return nil, fmt.Errorf("%w: shared point at infinity", ErrInvalidPublicKey)
	}
	result.ToAffine()

	shared := secp256k1.NewPublicKey(&result.X, &result.Y)
	return NewSharedKey(shared.SerializeCompressed()), nil
}

func (c *Secp256k1Curve) parsePrivate(sk PrivateKey) (*secp256k1.PrivateKey, error) {
	if len(sk) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPrivateKey, secp256k1.PrivKeyBytesLen, len(sk))
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sk.Bytes()); overflow || s.IsZero() {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKey)
	}
	return secp256k1.NewPrivateKey(&s), nil
}

func (c *Secp256k1Curve) parsePublic(pk PublicKey) (*secp256k1.PublicKey, error) {
	if len(pk) != secp256k1.PubKeyBytesLenCompressed {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPublicKey, secp256k1.PubKeyBytesLenCompressed, len(pk))
	}
	pub, err := secp256k1.ParsePubKey(pk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}
