package protocol

import (
	"encoding/json"
	"io"

	"github.com/pddisense/pdd-server-sub000/crypto"
)

// Submission is a client's contribution for one round, handed to the
// transport layer.
type Submission struct {
	Round     Round            `json:"round"`
	PublicKey crypto.PublicKey `json:"public_key"`

	// Encrypted holds the masked counters as decimal scalars.
	Encrypted []string `json:"encrypted"`

	// Raw holds the unmasked counters, only in raw-collection mode.
	Raw CounterVector `json:"raw,omitempty"`
}

// UnmarshalMessage deserializes a message from JSON bytes.
func UnmarshalMessage[T any](data []byte) (*T, error) {
	var msg T
	err := json.Unmarshal(data, &msg)
	return &msg, err
}

// DecodeMessage deserializes a message from a JSON reader.
func DecodeMessage[T any](reader io.Reader) (*T, error) {
	var msg T
	err := json.NewDecoder(reader).Decode(&msg)
	return &msg, err
}

// SerializeMessage serializes a message to JSON bytes.
func SerializeMessage[T any](msg *T) ([]byte, error) {
	return json.Marshal(msg)
}
