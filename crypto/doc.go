// Package crypto provides the cryptographic primitives for client-side
// secure aggregation of keyword counters.
//
// This package implements the leaf operations used by the protocol package:
//
//   - Scalar field arithmetic modulo the group order n (ScalarField)
//   - Key pair generation on a configurable prime-order curve (GenerateKeyPair)
//   - ECDH shared point derivation between two group members (DeriveSharedSecret)
//   - Hashing of a shared point, counter index and round into a scalar (HashToScalar)
//
// Note: scalar field arithmetic is on math/big and is not constant-time.
//
// # Curves
//
// Three backends implement the Curve interface:
//   - secp256k1 (default), 33-byte compressed points
//   - edwards25519, 32-byte compressed points
//   - ristretto255, 32-byte prime-order group encodings
//
// # Parameters
//
// A CurveParameters value bundles the curve, its scalar field and the hash
// used by HashToScalar. It is constructed once and passed to every component;
// all members of an aggregation round must agree on it.
package crypto
