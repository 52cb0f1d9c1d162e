package transport

import "github.com/google/uuid"

// UUIDGenerator backs bindings.IDGenerator with github.com/google/uuid, the
// pack's go-to for opaque correlation identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
