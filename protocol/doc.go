// Package protocol implements client-side secure aggregation of keyword
// counters: each client masks its counter vector so that a server summing
// the masked vectors of a whole group learns only the group sum.
//
// # Data Flow
//
// The surrounding client application supplies, per round:
//
//  1. A RoundInfo: the round identifier and the ordered Group of member
//     public keys, identical for every member.
//  2. The client's own crypto.KeyPair.
//  3. A CounterVector with one non-negative count per vocabulary entry.
//
// Encryptor.EncryptCounters validates the inputs, locates the client in the
// group, asks the BlindingGenerator for one blinding scalar per index and
// returns (counter + blinding) mod n for every index.
//
// # Blinding
//
// For a pair of members at positions i < j, both derive the same ECDH secret
// and hash it with the counter index and round into a term t. Member i adds
// t, member j subtracts it. Summed over the group every term cancels, so the
// blinding vectors sum to zero mod n and the masked vectors sum to the
// counters' sum mod n.
//
// # Errors
//
// A client whose key is not in the group gets a *GroupMembershipError
// (errors.Is ErrNotInGroup). Inputs that fail validation produce a
// *MalformedInputError. In both cases no partial result is returned.
//
// # Non-goals
//
// This package does not authenticate the group list, hide the round number
// or group size, or detect clients that misreport their counters.
package protocol
