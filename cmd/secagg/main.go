// Command secagg masks keyword counters for one aggregation round.
//
// # Commands
//
// keygen: Generate a key pair on the configured curve and print it as JSON.
//
//	secagg keygen --curve=ristretto255
//
// encrypt: Mask a counter vector for the round described by a JSON file
// ({"round": 7, "public_keys": ["02ab...", ...]}) and print the submission.
//
//	secagg encrypt --config=secagg.yaml --round-info=round.json --counters=3,0,5
//
// # Configuration
//
// Both commands accept a YAML file via --config. Flags override file values:
//
//	aggregation:
//	  curve: "secp256k1"
//	  hash: "sha256"
//	  parallelism: 4
//	keys:
//	  private_key: ""
//	log:
//	  level: "info"
//
// # Exit Codes
//
// 0 on success, 1 on any error, 2 on usage errors and 3 when the key is not a
// member of the round's group. Wrappers should refresh the group on 3.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pddisense/pdd-server-sub000/client"
	"github.com/pddisense/pdd-server-sub000/cmd/common"
	"github.com/pddisense/pdd-server-sub000/protocol"
)

const (
	exitOK         = 0
	exitError      = 1
	exitUsage      = 2
	exitNotInGroup = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "keygen":
		err = runKeygen(args[1:], stdout, stderr)
	case "encrypt":
		err = runEncrypt(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	case errors.Is(err, protocol.ErrNotInGroup):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitNotInGroup
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

var errUsage = errors.New("usage")

func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `secagg - secure aggregation of keyword counters

Usage:
  secagg <command> [options]

Commands:
  keygen    Generate a key pair
  encrypt   Mask counters for one round

Run 'secagg <command> --help' for command-specific options.`)
}

func loadConfig(path string) (*common.Config, error) {
	if path == "" {
		return common.DefaultConfig(), nil
	}
	return common.LoadConfig(path)
}

// --- Keygen Command ---

func runKeygen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config file")
	curve := fs.String("curve", "", "Curve name (overrides config)")
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *curve != "" {
		cfg.Aggregation.Curve = *curve
	}
	params, err := cfg.Aggregation.Params()
	if err != nil {
		return err
	}

	kp, err := common.LoadOrGenerateKeyPair(params, "")
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}
	return writeJSON(stdout, kp)
}

// --- Encrypt Command ---

func runEncrypt(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encrypt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath    = fs.String("config", "", "Path to YAML config file")
		roundInfoPath = fs.String("round-info", "", "Path to round info JSON (round, public_keys)")
		countersFlag  = fs.String("counters", "", "Comma-separated counters")
		keyHex        = fs.String("key", "", "Private key (hex, overrides config)")
		raw           = fs.Bool("raw", false, "Attach unmasked counters")
	)
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}
	if *roundInfoPath == "" || *countersFlag == "" {
		return fmt.Errorf("%w: --round-info and --counters are required", errUsage)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *keyHex != "" {
		cfg.Keys.PrivateKey = *keyHex
	}
	if *raw {
		cfg.Client.RawCollection = true
	}
	if cfg.Keys.PrivateKey == "" {
		return fmt.Errorf("%w: a private key is required (--key or keys.private_key)", errUsage)
	}

	log, err := common.NewLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	params, err := cfg.Aggregation.Params()
	if err != nil {
		return err
	}
	kp, err := common.LoadOrGenerateKeyPair(params, cfg.Keys.PrivateKey)
	if err != nil {
		return fmt.Errorf("load key: %w", err)
	}

	f, err := os.Open(*roundInfoPath)
	if err != nil {
		return fmt.Errorf("open round info: %w", err)
	}
	defer f.Close()
	info, err := protocol.DecodeMessage[protocol.RoundInfo](f)
	if err != nil {
		return fmt.Errorf("decode round info: %w", err)
	}

	counters, err := protocol.ParseCounters(strings.Split(*countersFlag, ","))
	if err != nil {
		return err
	}

	c, err := client.NewClient(&cfg.Aggregation, kp,
		client.WithLogger(log),
		client.WithRawCollection(cfg.Client.RawCollection),
		client.WithSecretCacheSize(cfg.Client.SecretCacheSize),
	)
	if err != nil {
		return err
	}

	sub, err := c.PrepareSubmission(*info, counters)
	if err != nil {
		return err
	}
	return writeJSON(stdout, sub)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
