package protocol

import (
	"errors"
	"fmt"
)

// ErrNotInGroup is returned when the caller's public key is not a member of
// the round's group. Callers should refresh the group list and retry.
var ErrNotInGroup = errors.New("public key not in group")

// GroupMembershipError carries the round for which membership failed.
type GroupMembershipError struct {
	Round Round
}

func (e *GroupMembershipError) Error() string {
	return fmt.Sprintf("round %d: %v", e.Round, ErrNotInGroup)
}

func (e *GroupMembershipError) Unwrap() error {
	return ErrNotInGroup
}

// MalformedInputError rejects inputs before any cryptographic work happens.
type MalformedInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
