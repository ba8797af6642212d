package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

// ed25519Order is L = 2^252 + 27742317777372353535851937790883648493.
var ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Edwards25519Curve implements Curve over the Edwards form of Curve25519.
// Points use the 32-byte compressed encoding, scalars 32 little-endian bytes.
type Edwards25519Curve struct {
	suite *edwards25519.SuiteEd25519
}

// NewEdwards25519Curve returns the edwards25519 backend.
func NewEdwards25519Curve() *Edwards25519Curve {
	return &Edwards25519Curve{suite: edwards25519.NewBlakeSHA256Ed25519()}
}

func (c *Edwards25519Curve) Name() string { return CurveEdwards25519 }

func (c *Edwards25519Curve) Order() *big.Int { return new(big.Int).Set(ed25519Order) }

func (c *Edwards25519Curve) GenerateKey(r io.Reader) (KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	var wide [64]byte
	v := new(big.Int)
	for {
		if _, err := io.ReadFull(r, wide[:]); err != nil {
			return KeyPair{}, fmt.Errorf("generate edwards25519 key: %w", err)
		}
		v.SetBytes(reverseBytes(wide[:]))
		v.Mod(v, ed25519Order)
		if v.Sign() != 0 {
			break
		}
	}

	skBytes := reverseBytes(v.FillBytes(make([]byte, 32)))
	s := c.suite.Scalar().SetBytes(skBytes)
	pkBytes, err := c.suite.Point().Mul(s, nil).MarshalBinary()
	if err != nil {
		return KeyPair{}, fmt.Errorf("encode edwards25519 point: %w", err)
	}
	return KeyPair{PublicKey: PublicKey(pkBytes), PrivateKey: PrivateKey(skBytes)}, nil
}

func (c *Edwards25519Curve) PublicKey(sk PrivateKey) (PublicKey, error) {
	s, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	pkBytes, err := c.suite.Point().Mul(s, nil).MarshalBinary()
	if err != nil {
		return nil, err
	}
	return PublicKey(pkBytes), nil
}

func (c *Edwards25519Curve) ValidatePublicKey(pk PublicKey) error {
	_, err := c.parsePublic(pk)
	return err
}

func (c *Edwards25519Curve) ValidatePrivateKey(sk PrivateKey) error {
	_, err := c.parsePrivate(sk)
	return err
}

func (c *Edwards25519Curve) ScalarMult(sk PrivateKey, peer PublicKey) (SharedKey, error) {
	s, err := c.parsePrivate(sk)
	if err != nil {
		return nil, err
	}
	p, err := c.parsePublic(peer)
	if err != nil {
		return nil, err
	}
	shared, err := c.suite.Point().Mul(s, p).MarshalBinary()
	if err != nil {
		return nil, err
	}
	return NewSharedKey(shared), nil
}

func (c *Edwards25519Curve) parsePrivate(sk PrivateKey) (kyber.Scalar, error) {
	if len(sk) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidPrivateKey, len(sk))
	}
	// Scalars are little-endian; reject non-canonical encodings.
	v := new(big.Int).SetBytes(reverseBytes(sk.Bytes()))
	if v.Sign() == 0 || v.Cmp(ed25519Order) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKey)
	}
	return c.suite.Scalar().SetBytes(sk), nil
}

func (c *Edwards25519Curve) parsePublic(pk PublicKey) (kyber.Point, error) {
	if len(pk) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidPublicKey, len(pk))
	}
	p := c.suite.Point()
	if err := p.UnmarshalBinary(pk.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if p.Equal(c.suite.Point().Null()) {
		return nil, fmt.Errorf("%w: identity point", ErrInvalidPublicKey)
	}
	return p, nil
}

// reverseBytes returns a reversed copy, converting between little-endian
// scalar encodings and big.Int's big-endian bytes.
func reverseBytes(b []byte) []byte {
	res := make([]byte, len(b))
	for i := range b {
		res[len(b)-1-i] = b[i]
	}
	return res
}
