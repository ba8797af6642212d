package crypto

import (
	"io"
)

// GenerateKeyPair draws a fresh key pair on the configured curve.
// A nil rand uses crypto/rand.
func GenerateKeyPair(params *CurveParameters, rand io.Reader) (KeyPair, error) {
	return params.Curve.GenerateKey(rand)
}

// DeriveSharedSecret performs ECDH: the peer's public point multiplied by our
// private scalar. The result is symmetric,
// DeriveSharedSecret(a.priv, b.pub) == DeriveSharedSecret(b.priv, a.pub).
func DeriveSharedSecret(params *CurveParameters, privateKey PrivateKey, peerPublicKey PublicKey) (SharedKey, error) {
	return params.Curve.ScalarMult(privateKey, peerPublicKey)
}
