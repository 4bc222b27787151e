// Package idgen provides the unique-id service the interval-metric buffer
// uses to mint begin_ids for interleaved-mode intervals.
package idgen

import "github.com/google/uuid"

// ID is an opaque 128-bit identifier, satisfying the core's new_id() -> u128
// contract. uuid.UUID is a [16]byte array and compares by value, so IDs are
// usable directly as map keys.
type ID = uuid.UUID

// Nil is the zero-value ID, used internally to mean "no begin id" for
// non-interleaved calls.
var Nil = uuid.Nil

// Generator produces unique ids.
type Generator interface {
	NewID() ID
}

// UUIDGenerator is a Generator backed by google/uuid's random (v4) ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewID() ID {
	return uuid.New()
}
