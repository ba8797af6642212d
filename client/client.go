package client

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/decred/dcrd/container/lru"
	"github.com/pddisense/pdd-server-sub000/crypto"
	"github.com/pddisense/pdd-server-sub000/protocol"
	"go.uber.org/atomic"
)

// DefaultSecretCacheSize bounds the number of peer secrets kept in memory.
const DefaultSecretCacheSize = 1024

// ErrStaleRound is returned when a submission is requested for a round not
// newer than the last one this client submitted for.
var ErrStaleRound = errors.New("round already submitted")

// Client prepares masked counter submissions for a long-lived key pair.
// Pairwise secrets are cached across rounds, since group membership
// usually changes little between rounds.
type Client struct {
	encryptor *protocol.Encryptor
	keyPair   crypto.KeyPair
	log       *slog.Logger

	rawCollection bool
	secrets       *secretCache

	// lastRound holds the last submitted round plus one; zero means none.
	lastRound atomic.Uint64
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRawCollection attaches the unmasked counters to every submission.
// Only meant for opted-in diagnostic deployments.
func WithRawCollection(enabled bool) Option {
	return func(c *Client) {
		c.rawCollection = enabled
	}
}

// WithSecretCacheSize sets the number of peer secrets kept in memory.
func WithSecretCacheSize(size uint32) Option {
	return func(c *Client) {
		c.secrets = newSecretCache(c.encryptor.Params, c.keyPair.PrivateKey, size)
	}
}

// NewClient creates a client for the given configuration and key pair.
// The key pair is validated against the configured curve.
func NewClient(cfg *protocol.AggregationConfig, kp crypto.KeyPair, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	encryptor, err := cfg.NewEncryptor()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := kp.Validate(encryptor.Params); err != nil {
		return nil, fmt.Errorf("invalid key pair: %w", err)
	}

	c := &Client{
		encryptor: encryptor,
		keyPair:   kp,
		log:       slog.Default(),
	}
	c.secrets = newSecretCache(encryptor.Params, kp.PrivateKey, DefaultSecretCacheSize)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "client", "suite", encryptor.Params.String())
	return c, nil
}

// PublicKey returns the key under which this client appears in groups.
func (c *Client) PublicKey() crypto.PublicKey {
	return c.keyPair.PublicKey
}

// LastRound returns the last round a submission was prepared for.
func (c *Client) LastRound() (protocol.Round, bool) {
	v := c.lastRound.Load()
	if v == 0 {
		return 0, false
	}
	return protocol.Round(v - 1), true
}

// PrepareSubmission masks counters for the round described by info.
//
// Rounds must strictly increase: preparing a second submission for the same
// or an older round returns ErrStaleRound, since two differently masked
// vectors for one round would let the server subtract the masks away.
// A failed call leaves the round guard untouched. PrepareSubmission is safe
// for concurrent use; of several concurrent calls the newest round always
// succeeds.
func (c *Client) PrepareSubmission(info protocol.RoundInfo, counters protocol.CounterVector) (*protocol.Submission, error) {
	if uint64(info.Round) == math.MaxUint64 {
		return nil, &protocol.MalformedInputError{Field: "round", Reason: "exceeds the supported range"}
	}
	last := c.lastRound.Load()
	if last != 0 && uint64(info.Round) < last {
		return nil, fmt.Errorf("%w: round %d, last %d", ErrStaleRound, info.Round, last-1)
	}

	encrypted, err := c.encryptor.EncryptCounters(c.secrets, info, c.keyPair, counters)
	if errors.Is(err, protocol.ErrNotInGroup) {
		c.log.Warn("public key not in round group", "round", info.Round, "group_size", len(info.Group))
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("encrypt counters: %w", err)
	}

	if err := c.advanceRound(info.Round); err != nil {
		return nil, err
	}

	sub := &protocol.Submission{
		Round:     info.Round,
		PublicKey: c.keyPair.PublicKey,
		Encrypted: encrypted.Strings(),
	}
	if c.rawCollection {
		sub.Raw = append(protocol.CounterVector(nil), counters...)
	}

	c.log.Debug("prepared submission", "round", info.Round, "group_size", len(info.Group), "counters", len(counters))
	return sub, nil
}

// advanceRound records round as the last submitted one. Concurrent callers
// race on the guard; only a round older than or equal to the recorded one
// loses.
func (c *Client) advanceRound(round protocol.Round) error {
	next := uint64(round) + 1
	for {
		cur := c.lastRound.Load()
		if cur != 0 && uint64(round) < cur {
			return fmt.Errorf("%w: round %d, last %d", ErrStaleRound, round, cur-1)
		}
		if c.lastRound.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

// secretCache memoizes ECDH results per peer public key.
type secretCache struct {
	direct *protocol.DirectSecrets
	cache  *lru.Map[string, crypto.SharedKey]
}

func newSecretCache(params *crypto.CurveParameters, priv crypto.PrivateKey, size uint32) *secretCache {
	if size == 0 {
		size = 1
	}
	return &secretCache{
		direct: &protocol.DirectSecrets{Params: params, Private: priv},
		cache:  lru.NewMap[string, crypto.SharedKey](size),
	}
}

// SharedSecret returns the cached secret or derives and caches it.
func (s *secretCache) SharedSecret(peer crypto.PublicKey) (crypto.SharedKey, error) {
	key := string(peer.Bytes())
	if secret, ok := s.cache.Get(key); ok {
		return secret, nil
	}
	secret, err := s.direct.SharedSecret(peer)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, secret)
	return secret, nil
}

// Len returns the number of cached secrets.
func (s *secretCache) Len() int {
	return int(s.cache.Len())
}
