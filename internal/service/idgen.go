package service

import "github.com/google/uuid"

// IDGenerator produces unique ticket identifiers.
type IDGenerator interface {
	GenerateID() string
}

// UUIDGenerator issues random UUID identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) GenerateID() string {
	return uuid.NewString()
}
