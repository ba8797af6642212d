package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pddisense/pdd-server-sub000/crypto"
	"github.com/pddisense/pdd-server-sub000/protocol"
	"github.com/pddisense/pdd-server-sub000/testutil"
	"github.com/stretchr/testify/require"
)

func writeRoundInfo(t *testing.T, info protocol.RoundInfo) string {
	t.Helper()
	data, err := protocol.SerializeMessage(&info)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "round.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestKeygen(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"keygen", "-curve", crypto.CurveEdwards25519}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var kp crypto.KeyPair
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &kp))
	params, err := crypto.NewCurveParameters(crypto.CurveEdwards25519, "")
	require.NoError(t, err)
	require.NoError(t, kp.Validate(params))

	code = run([]string{"keygen", "-curve", "p521"}, &stdout, &stderr)
	require.Equal(t, exitError, code)
}

func TestEncrypt(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)
	roundPath := writeRoundInfo(t, tg.RoundInfo(7))

	counters := []string{"3,0", "1,2", "0,5"}
	var encrypted [][]string
	for i, kp := range tg.KeyPairs {
		var stdout, stderr bytes.Buffer
		code := run([]string{"encrypt", "-round-info", roundPath, "-counters", counters[i], "-key", kp.PrivateKey.String()}, &stdout, &stderr)
		require.Equal(t, exitOK, code, stderr.String())

		sub, err := protocol.UnmarshalMessage[protocol.Submission](stdout.Bytes())
		require.NoError(t, err)
		require.Equal(t, protocol.Round(7), sub.Round)
		require.Nil(t, sub.Raw)
		encrypted = append(encrypted, sub.Encrypted)
	}

	sums := testutil.SumDecimalVectors(t, params.Field, encrypted...)
	require.Equal(t, int64(4), sums[0].Int64())
	require.Equal(t, int64(7), sums[1].Int64())
}

func TestEncryptExitCodes(t *testing.T) {
	params := crypto.DefaultCurveParameters()
	tg := testutil.NewTestGroup(t, params, 3)
	outsider, err := crypto.GenerateKeyPair(params, nil)
	require.NoError(t, err)
	roundPath := writeRoundInfo(t, tg.RoundInfo(1))

	var stdout, stderr bytes.Buffer
	code := run([]string{"encrypt", "-round-info", roundPath, "-counters", "1,2", "-key", outsider.PrivateKey.String()}, &stdout, &stderr)
	require.Equal(t, exitNotInGroup, code)
	require.Empty(t, stdout.String())

	code = run([]string{"encrypt", "-round-info", roundPath, "-counters", "1,-2", "-key", tg.KeyPairs[0].PrivateKey.String()}, &stdout, &stderr)
	require.Equal(t, exitError, code)

	code = run([]string{"encrypt", "-counters", "1"}, &stdout, &stderr)
	require.Equal(t, exitUsage, code)

	code = run([]string{"encrypt", "-bogus"}, &stdout, &stderr)
	require.Equal(t, exitUsage, code)

	code = run([]string{"frobnicate"}, &stdout, &stderr)
	require.Equal(t, exitUsage, code)
}

func TestEncryptWithConfigFile(t *testing.T) {
	params, err := crypto.NewCurveParameters(crypto.CurveRistretto255, crypto.HashBlake256)
	require.NoError(t, err)
	tg := testutil.NewTestGroup(t, params, 2)
	roundPath := writeRoundInfo(t, tg.RoundInfo(2))

	configPath := filepath.Join(t.TempDir(), "secagg.yaml")
	config := "aggregation:\n  curve: ristretto255\n  hash: blake256\n  vocabulary_size: 3\nkeys:\n  private_key: \"" + tg.KeyPairs[1].PrivateKey.String() + "\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"encrypt", "-config", configPath, "-round-info", roundPath, "-counters", "4,5,6", "-raw"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	sub, err := protocol.UnmarshalMessage[protocol.Submission](stdout.Bytes())
	require.NoError(t, err)
	require.True(t, sub.PublicKey.Equal(tg.KeyPairs[1].PublicKey))
	require.Equal(t, protocol.CounterVector{4, 5, 6}, sub.Raw)

	// Vocabulary size from the file is enforced.
	code = run([]string{"encrypt", "-config", configPath, "-round-info", roundPath, "-counters", "4,5"}, &stdout, &stderr)
	require.Equal(t, exitError, code)
}
