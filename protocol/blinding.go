package protocol

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pddisense/pdd-server-sub000/crypto"
	"golang.org/x/sync/errgroup"
)

// BlindingVector holds one blinding scalar in [0, n) per counter index.
// It is derived from (group, client index, round) and never persisted.
type BlindingVector []*big.Int

// SecretSource supplies the pairwise ECDH secret between the caller and a peer.
type SecretSource interface {
	SharedSecret(peer crypto.PublicKey) (crypto.SharedKey, error)
}

// DirectSecrets derives every secret on demand with the caller's private key.
type DirectSecrets struct {
	Params  *crypto.CurveParameters
	Private crypto.PrivateKey
}

// SharedSecret performs ECDH with the peer.
func (d *DirectSecrets) SharedSecret(peer crypto.PublicKey) (crypto.SharedKey, error) {
	return crypto.DeriveSharedSecret(d.Params, d.Private, peer)
}

// BlindingGenerator combines pairwise secrets across a group into blinding
// factors that cancel when summed over all members.
type BlindingGenerator struct {
	Params *crypto.CurveParameters

	// Parallelism bounds concurrent peer derivations; below 2 is sequential.
	Parallelism int
}

// Generate computes the blinding vector of the member at clientIndex.
//
// For each index l the peer at position j contributes
// t = HashToScalar(secret(client, j), l, round), added when j < clientIndex
// and subtracted when j > clientIndex. The member's own position contributes
// nothing. Every unordered pair {i, j} thus enters one member's sum with +t
// and the other's with -t, so the group-wide sum is zero mod n.
func (b *BlindingGenerator) Generate(secrets SecretSource, group Group, clientIndex int, length int, round Round) (BlindingVector, error) {
	if clientIndex < 0 || clientIndex >= len(group) {
		return nil, fmt.Errorf("client index %d outside group of %d", clientIndex, len(group))
	}
	if length < 0 {
		return nil, fmt.Errorf("negative vector length %d", length)
	}

	acc := make(BlindingVector, length)
	for i := range acc {
		acc[i] = b.Params.Field.Zero()
	}

	if b.Parallelism < 2 || len(group) < 3 {
		for j := range group {
			if j == clientIndex {
				continue
			}
			terms, err := b.peerTerms(secrets, group[j], length, round)
			if err != nil {
				return nil, fmt.Errorf("peer %d: %w", j, err)
			}
			b.accumulate(acc, terms, j, clientIndex)
		}
		return acc, nil
	}

	contributions := make([][]*big.Int, len(group))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(b.Parallelism)
	for j := range group {
		if j == clientIndex {
			continue
		}
		j := j
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			terms, err := b.peerTerms(secrets, group[j], length, round)
			if err != nil {
				return fmt.Errorf("peer %d: %w", j, err)
			}
			contributions[j] = terms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for j, terms := range contributions {
		if j == clientIndex {
			continue
		}
		b.accumulate(acc, terms, j, clientIndex)
	}
	return acc, nil
}

func (b *BlindingGenerator) peerTerms(secrets SecretSource, peer crypto.PublicKey, length int, round Round) ([]*big.Int, error) {
	secret, err := secrets.SharedSecret(peer)
	if err != nil {
		return nil, err
	}
	terms := make([]*big.Int, length)
	for l := range terms {
		terms[l] = crypto.HashToScalar(b.Params, secret, uint32(l), uint64(round))
	}
	return terms, nil
}

func (b *BlindingGenerator) accumulate(acc BlindingVector, terms []*big.Int, peerIndex, clientIndex int) {
	for l := range acc {
		switch {
		case peerIndex < clientIndex:
			b.Params.Field.Add(acc[l], terms[l])
		case peerIndex > clientIndex:
			b.Params.Field.Sub(acc[l], terms[l])
		}
	}
}
