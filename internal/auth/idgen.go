package auth

import "github.com/google/uuid"

// UUIDGenerator generates random (v4) UUID strings for new records
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new collision-free identifier
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
