package crypto

import (
	"fmt"
)

// CurveParameters is the immutable cryptographic configuration shared by all
// members of a round: the group, its scalar field and the hash used to derive
// blinding terms. Members with different parameters will not cancel.
type CurveParameters struct {
	Curve Curve
	Hash  HashFunc
	Field *ScalarField

	domain []byte
}

// NewCurveParameters builds parameters from configured curve and hash names.
// Empty names select secp256k1 and sha256.
func NewCurveParameters(curveName, hashName string) (*CurveParameters, error) {
	curve, err := CurveByName(curveName)
	if err != nil {
		return nil, err
	}
	h, err := HashByName(hashName)
	if err != nil {
		return nil, err
	}
	return &CurveParameters{
		Curve:  curve,
		Hash:   h,
		Field:  NewScalarField(curve.Order()),
		domain: []byte(fmt.Sprintf("%s/%s/%s", hashToScalarDomain, curve.Name(), h.Name)),
	}, nil
}

// DefaultCurveParameters returns secp256k1 with sha256.
func DefaultCurveParameters() *CurveParameters {
	params, err := NewCurveParameters(CurveSecp256k1, HashSHA256)
	if err != nil {
		panic(err)
	}
	return params
}

// String identifies the suite, e.g. "secp256k1/sha256".
func (p *CurveParameters) String() string {
	return p.Curve.Name() + "/" + p.Hash.Name
}
