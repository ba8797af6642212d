package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"math/big"

	"github.com/decred/dcrd/crypto/blake256"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// Hash names accepted in configuration.
const (
	HashSHA256     = "sha256"
	HashSHA3_256   = "sha3-256"
	HashBlake2b256 = "blake2b-256"
	HashBlake256   = "blake256"
)

// hashToScalarDomain prefixes the HKDF salt of every blinding term.
const hashToScalarDomain = "pdd-secagg-v1"

// scalarSecurityBytes is the number of extra bytes drawn before reducing
// mod n, keeping the distribution within 2^-128 of uniform.
const scalarSecurityBytes = 16

// HashFunc names a hash constructor.
type HashFunc struct {
	Name string
	New  func() hash.Hash
}

// HashByName resolves a configured hash name.
func HashByName(name string) (HashFunc, error) {
	switch name {
	case HashSHA256, "":
		return HashFunc{Name: HashSHA256, New: sha256.New}, nil
	case HashSHA3_256:
		return HashFunc{Name: HashSHA3_256, New: sha3.New256}, nil
	case HashBlake2b256:
		return HashFunc{Name: HashBlake2b256, New: newBlake2b256}, nil
	case HashBlake256:
		return HashFunc{Name: HashBlake256, New: blake256.New}, nil
	default:
		return HashFunc{}, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
}

// SupportedHashes lists the hash names HashByName accepts.
func SupportedHashes() []string {
	return []string{HashSHA256, HashSHA3_256, HashBlake2b256, HashBlake256}
}

func newBlake2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only a key longer than 64 bytes fails.
		panic(err)
	}
	return h
}

// HashToScalar deterministically maps a pairwise shared secret, a counter
// index and a round to a scalar in [0, n).
//
// The secret is expanded with HKDF over the configured hash. The salt binds
// the curve and hash names, the info binds index and round (both 8 bytes,
// big-endian). The expansion is one field width plus 16 bytes and is reduced
// mod n.
func HashToScalar(params *CurveParameters, secret SharedKey, index uint32, round uint64) *big.Int {
	info := make([]byte, 16)
	binary.BigEndian.PutUint64(info[:8], uint64(index))
	binary.BigEndian.PutUint64(info[8:], round)

	kdf := hkdf.New(params.Hash.New, secret.Bytes(), params.domain, info)
	buf := make([]byte, params.Field.ByteSize()+scalarSecurityBytes)
	if _, err := io.ReadFull(kdf, buf); err != nil {
		// HKDF only fails past 255 hash blocks of output.
		panic(fmt.Errorf("hash to scalar: %w", err))
	}

	x := new(big.Int).SetBytes(buf)
	return x.Mod(x, params.Field.order)
}
