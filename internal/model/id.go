package model

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityID is an opaque identifier for an entity of type T.
// The type parameter is never stored; it only keeps identifiers of
// different entities from being compared or assigned to one another.
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID generates a random identifier.
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFrom wraps an existing UUID.
func EntityIDFrom[T any](value uuid.UUID) EntityID[T] {
	return EntityID[T]{value: value}
}

// ParseEntityID parses the canonical string form of a UUID.
func ParseEntityID[T any](s string) (EntityID[T], error) {
	value, err := uuid.Parse(s)
	if err != nil {
		return EntityID[T]{}, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return EntityID[T]{value: value}, nil
}

// Value returns the underlying UUID.
func (id EntityID[T]) Value() uuid.UUID {
	return id.value
}

func (id EntityID[T]) String() string {
	return id.value.String()
}

// IsZero reports whether the identifier is the nil UUID.
func (id EntityID[T]) IsZero() bool {
	return id.value == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler.
func (id EntityID[T]) MarshalText() ([]byte, error) {
	return id.value.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EntityID[T]) UnmarshalText(data []byte) error {
	return id.value.UnmarshalText(data)
}
