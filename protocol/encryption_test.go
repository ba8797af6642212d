package protocol_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pddisense/pdd-server-sub000/crypto"
	"github.com/pddisense/pdd-server-sub000/protocol"
	"github.com/pddisense/pdd-server-sub000/testutil"
	"github.com/stretchr/testify/require"
)

// TestExampleScenario runs three members A, B, C over round 7 with two
// counters each and checks the server-side sums.
func TestExampleScenario(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)

	counters := []protocol.CounterVector{{3, 0}, {1, 2}, {0, 5}}
	encrypted := make([][]string, 3)
	for k := range tg.KeyPairs {
		enc, err := protocol.EncryptCounters(params, tg.Group, 7, tg.KeyPairs[k], counters[k])
		require.NoError(t, err)
		require.Len(t, enc, 2)
		encrypted[k] = enc
	}

	sums := testutil.SumDecimalVectors(t, params.Field, encrypted...)
	require.Equal(t, int64(4), sums[0].Int64())
	require.Equal(t, int64(7), sums[1].Int64())

	// Individual vectors are masked.
	require.NotEqual(t, "3", encrypted[0][0])
}

func TestZeroSumCancellation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, curve := range crypto.SupportedCurves() {
		for _, hash := range crypto.SupportedHashes() {
			cfg := testutil.NewTestConfig(testutil.WithCurve(curve), testutil.WithHash(hash))
			encryptor, err := cfg.NewEncryptor()
			require.NoError(t, err)
			params := encryptor.Params

			t.Run(params.String(), func(t *testing.T) {
				tg := testutil.NewTestGroup(t, params, 5)
				counters := testutil.RandomCounters(rng, 5, 4)
				info := tg.RoundInfo(42)

				encrypted := make([][]*big.Int, len(tg.KeyPairs))
				for k, kp := range tg.KeyPairs {
					enc, err := encryptor.EncryptCounters(nil, info, kp, counters[k])
					require.NoError(t, err)
					for _, x := range enc {
						require.True(t, params.Field.Contains(x))
					}
					encrypted[k] = enc
				}

				got := testutil.SumVectors(params.Field, encrypted...)
				want := testutil.SumCounters(counters...)
				for i := range want {
					require.Zero(t, want[i].Cmp(got[i]), "index %d: want %v, got %v", i, want[i], got[i])
				}
			})
		}
	}
}

func TestSingletonGroupIsUnmasked(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 1)

	enc, err := protocol.EncryptCounters(params, tg.Group, 3, tg.KeyPairs[0], protocol.CounterVector{3, 0, 17})
	require.NoError(t, err)
	require.Equal(t, []string{"3", "0", "17"}, enc)
}

// TestCounterDecimalEncoding pins the direct numeric mapping of counters:
// a count of 10 must not be read as the hex digits 0x10.
func TestCounterDecimalEncoding(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 1)

	enc, err := protocol.EncryptCounters(params, tg.Group, 1, tg.KeyPairs[0], protocol.CounterVector{10, 255})
	require.NoError(t, err)
	require.Equal(t, []string{"10", "255"}, enc)
}

func TestRoundIndependence(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)
	counters := protocol.CounterVector{1, 2, 3}

	round1, err := protocol.EncryptCounters(params, tg.Group, 1, tg.KeyPairs[1], counters)
	require.NoError(t, err)
	round2, err := protocol.EncryptCounters(params, tg.Group, 2, tg.KeyPairs[1], counters)
	require.NoError(t, err)
	for i := range round1 {
		require.NotEqual(t, round1[i], round2[i])
	}

	// Same round is reproducible.
	again, err := protocol.EncryptCounters(params, tg.Group, 1, tg.KeyPairs[1], counters)
	require.NoError(t, err)
	require.Equal(t, round1, again)
}

func TestMembershipPrecondition(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)
	outsider, err := crypto.GenerateKeyPair(params, nil)
	require.NoError(t, err)

	enc, err := protocol.EncryptCounters(params, tg.Group, 9, outsider, protocol.CounterVector{1})
	require.ErrorIs(t, err, protocol.ErrNotInGroup)
	require.Nil(t, enc)

	var membershipErr *protocol.GroupMembershipError
	require.ErrorAs(t, err, &membershipErr)
	require.Equal(t, protocol.Round(9), membershipErr.Round)
}

func TestMalformedInputsRejected(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)
	encryptor := protocol.NewEncryptor(params)
	encryptor.VocabularySize = 2
	info := tg.RoundInfo(1)

	tests := []struct {
		name     string
		info     protocol.RoundInfo
		kp       crypto.KeyPair
		counters protocol.CounterVector
	}{
		{"empty counters", info, tg.KeyPairs[0], protocol.CounterVector{}},
		{"length mismatch", info, tg.KeyPairs[0], protocol.CounterVector{1, 2, 3}},
		{"duplicate member", protocol.RoundInfo{Round: 1, Group: append(protocol.Group{tg.Group[0]}, tg.Group...)}, tg.KeyPairs[0], protocol.CounterVector{1, 2}},
		{"undecodable member", protocol.RoundInfo{Round: 1, Group: append(protocol.Group{{0x01, 0x02}}, tg.Group...)}, tg.KeyPairs[0], protocol.CounterVector{1, 2}},
		{"empty group", protocol.RoundInfo{Round: 1}, tg.KeyPairs[0], protocol.CounterVector{1, 2}},
		{"mismatched key pair", info, crypto.KeyPair{PublicKey: tg.KeyPairs[0].PublicKey, PrivateKey: tg.KeyPairs[1].PrivateKey}, protocol.CounterVector{1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := encryptor.EncryptCounters(nil, tc.info, tc.kp, tc.counters)
			require.Nil(t, enc)
			var malformed *protocol.MalformedInputError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestParseCounters(t *testing.T) {
	counters, err := protocol.ParseCounters([]string{"3", " 0", "17 "})
	require.NoError(t, err)
	require.Equal(t, protocol.CounterVector{3, 0, 17}, counters)

	for _, bad := range []string{"-1", "1.5", "abc", "", "0x10"} {
		_, err := protocol.ParseCounters([]string{"1", bad})
		var malformed *protocol.MalformedInputError
		require.ErrorAs(t, err, &malformed, "input %q", bad)
	}
}

func TestEncryptedVectorEncodings(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	v := protocol.EncryptedVector{big.NewInt(0), big.NewInt(255)}

	require.Equal(t, []string{"0", "255"}, v.Strings())
	hexes := v.HexStrings(params.Field)
	require.Len(t, hexes[1], 64)
	require.Equal(t, "ff", hexes[1][62:])
}

func TestSubmissionJSON(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	kp, err := crypto.GenerateKeyPair(params, nil)
	require.NoError(t, err)

	sub := &protocol.Submission{Round: 5, PublicKey: kp.PublicKey, Encrypted: []string{"1", "2"}}
	data, err := protocol.SerializeMessage(sub)
	require.NoError(t, err)
	require.Contains(t, string(data), kp.PublicKey.String())
	require.NotContains(t, string(data), "raw")

	decoded, err := protocol.UnmarshalMessage[protocol.Submission](data)
	require.NoError(t, err)
	require.Equal(t, sub.Round, decoded.Round)
	require.True(t, sub.PublicKey.Equal(decoded.PublicKey))
	require.Equal(t, sub.Encrypted, decoded.Encrypted)
}
