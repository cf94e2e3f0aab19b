package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SessionKey is the durable storage key of the serialized identity.
const SessionKey = "currentUser"

// SignedOut is written in place of the durable copy when it cannot be deleted.
var SignedOut = []byte("null")

// IsSignedOut reports whether data is an explicit signed-out record.
func IsSignedOut(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), SignedOut)
}

// EncodeIdentity serializes the identity for the durable copy.
func EncodeIdentity(id *Identity) ([]byte, error) {
	if id == nil {
		return nil, fmt.Errorf("encode identity: nil identity")
	}
	return json.Marshal(id)
}

// DecodeIdentity parses a durable copy. Any unparseable or structurally
// invalid content is reported as ErrMalformedSession.
func DecodeIdentity(data []byte) (*Identity, error) {
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if strings.TrimSpace(id.Username) == "" {
		return nil, fmt.Errorf("%w: missing username", ErrMalformedSession)
	}
	return &id, nil
}
