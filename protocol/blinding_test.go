package protocol_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pddisense/pdd-server-sub000/crypto"
	"github.com/pddisense/pdd-server-sub000/protocol"
	"github.com/pddisense/pdd-server-sub000/testutil"
	"github.com/stretchr/testify/require"
)

func TestBlindingVectorsSumToZero(t *testing.T) {
	for _, curve := range crypto.SupportedCurves() {
		params, err := crypto.NewCurveParameters(curve, "")
		require.NoError(t, err)

		t.Run(curve, func(t *testing.T) {
			tg := testutil.NewTestGroup(t, params, 6)
			gen := &protocol.BlindingGenerator{Params: params}

			vectors := make([][]*big.Int, len(tg.KeyPairs))
			for k, kp := range tg.KeyPairs {
				secrets := &protocol.DirectSecrets{Params: params, Private: kp.PrivateKey}
				v, err := gen.Generate(secrets, tg.Group, k, 3, 11)
				require.NoError(t, err)
				vectors[k] = v
			}

			for _, s := range testutil.SumVectors(params.Field, vectors...) {
				require.Zero(t, s.Sign())
			}
		})
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 8)
	sequential := &protocol.BlindingGenerator{Params: params}
	parallel := &protocol.BlindingGenerator{Params: params, Parallelism: 4}

	for k, kp := range tg.KeyPairs {
		secrets := &protocol.DirectSecrets{Params: params, Private: kp.PrivateKey}
		want, err := sequential.Generate(secrets, tg.Group, k, 5, 3)
		require.NoError(t, err)
		got, err := parallel.Generate(secrets, tg.Group, k, 5, 3)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestTwoMemberBlindingIsOpposite(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 2)
	gen := &protocol.BlindingGenerator{Params: params}

	first, err := gen.Generate(&protocol.DirectSecrets{Params: params, Private: tg.KeyPairs[0].PrivateKey}, tg.Group, 0, 2, 1)
	require.NoError(t, err)
	second, err := gen.Generate(&protocol.DirectSecrets{Params: params, Private: tg.KeyPairs[1].PrivateKey}, tg.Group, 1, 2, 1)
	require.NoError(t, err)

	secret, err := crypto.DeriveSharedSecret(params, tg.KeyPairs[0].PrivateKey, tg.Group[1])
	require.NoError(t, err)
	for l := range first {
		term := crypto.HashToScalar(params, secret, uint32(l), 1)
		// Member 0 only has a later peer, so it subtracts the term.
		require.Zero(t, first[l].Cmp(params.Field.Sub(params.Field.Zero(), term)))
		require.Zero(t, second[l].Cmp(term))
	}
}

type failingSecrets struct{ err error }

func (f failingSecrets) SharedSecret(crypto.PublicKey) (crypto.SharedKey, error) {
	return nil, f.err
}

func TestGenerateFailures(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 4)
	boom := errors.New("boom")

	for _, parallelism := range []int{1, 3} {
		gen := &protocol.BlindingGenerator{Params: params, Parallelism: parallelism}
		_, err := gen.Generate(failingSecrets{err: boom}, tg.Group, 1, 2, 1)
		require.ErrorIs(t, err, boom)
	}

	gen := &protocol.BlindingGenerator{Params: params}
	_, err := gen.Generate(failingSecrets{}, tg.Group, 4, 2, 1)
	require.Error(t, err)
	_, err = gen.Generate(failingSecrets{}, tg.Group, -1, 2, 1)
	require.Error(t, err)
}

func TestGroupIndexAndValidate(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)

	require.Equal(t, 2, tg.Group.IndexOf(tg.KeyPairs[2].PublicKey))
	outsider, err := crypto.GenerateKeyPair(params, nil)
	require.NoError(t, err)
	require.Equal(t, -1, tg.Group.IndexOf(outsider.PublicKey))
	require.NoError(t, tg.Group.Validate(params))

	// Keys from another curve do not decode.
	other, err := crypto.NewCurveParameters(crypto.CurveRistretto255, "")
	require.NoError(t, err)
	require.Error(t, tg.Group.Validate(other))
}

func TestAggregationConfig(t *testing.T) {
	cfg := protocol.DefaultAggregationConfig()
	params, err := cfg.Params()
	require.NoError(t, err)
	require.Equal(t, "secp256k1/sha256", params.String())

	cfg = testutil.NewTestConfig(testutil.WithCurve("p256"))
	_, err = cfg.Params()
	require.ErrorIs(t, err, crypto.ErrUnknownCurve)

	cfg = testutil.NewTestConfig(testutil.WithHash("md5"))
	_, err = cfg.NewEncryptor()
	require.ErrorIs(t, err, crypto.ErrUnknownHash)

	cfg = testutil.NewTestConfig(testutil.WithParallelism(-1))
	require.Error(t, cfg.Validate())
	cfg = testutil.NewTestConfig(testutil.WithVocabularySize(-3))
	require.Error(t, cfg.Validate())

	cfg = testutil.NewTestConfig(testutil.WithVocabularySize(4), testutil.WithParallelism(2))
	encryptor, err := cfg.NewEncryptor()
	require.NoError(t, err)
	require.Equal(t, 4, encryptor.VocabularySize)
	require.Equal(t, 2, encryptor.Generator.Parallelism)
}
