package protocol

import (
	"fmt"

	"github.com/pddisense/pdd-server-sub000/crypto"
)

// Round identifies one aggregation epoch. It domain-separates blinding
// factors so that an unchanged group produces fresh masks every round.
type Round uint64

// Group is the ordered list of member public keys for one round.
// The order is authoritative: sign rules depend on relative position, so
// every member must use the exact ordering supplied by the server.
type Group []crypto.PublicKey

// IndexOf returns the position of pk in the group, or -1 if absent.
func (g Group) IndexOf(pk crypto.PublicKey) int {
	for i, member := range g {
		if member.Equal(pk) {
			return i
		}
	}
	return -1
}

// Validate rejects groups with undecodable keys or duplicate members.
func (g Group) Validate(params *crypto.CurveParameters) error {
	if len(g) == 0 {
		return &MalformedInputError{Field: "group", Reason: "empty"}
	}
	seen := make(map[string]int, len(g))
	for i, pk := range g {
		if err := params.Curve.ValidatePublicKey(pk); err != nil {
			return &MalformedInputError{Field: "group", Reason: fmt.Sprintf("member %d", i), Err: err}
		}
		if j, dup := seen[pk.String()]; dup {
			return &MalformedInputError{Field: "group", Reason: fmt.Sprintf("members %d and %d are identical", j, i)}
		}
		seen[pk.String()] = i
	}
	return nil
}

// RoundInfo is the per-round protocol input supplied by the server: the
// round identifier and the group ordering all members agree on.
type RoundInfo struct {
	Round Round `json:"round"`
	Group Group `json:"public_keys"`
}
