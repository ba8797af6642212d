// Package cmd provides CLI commands for client-side secure aggregation.
//
// # Commands
//
// secagg: Generate key pairs and mask counter vectors for a round.
//
//	go run ./cmd/secagg keygen --curve=secp256k1
//	go run ./cmd/secagg encrypt --config=secagg.yaml --round-info=round.json --counters=3,0,5
//
// # Configuration
//
// Commands support YAML configuration files via the --config flag.
// Command-line flags override config file values.
//
//	aggregation:
//	  curve: "secp256k1"
//	  hash: "sha256"
//	  vocabulary_size: 0
//	  parallelism: 4
//	client:
//	  raw_collection: false
//	  secret_cache_size: 1024
//	keys:
//	  private_key: ""
//	log:
//	  level: "info"
//	  format: "text"
package cmd
