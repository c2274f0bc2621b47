package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered (version 7) UUID strings.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7. Unlike v4, v7 values sort by creation time.
func (g *UUIDGenerator) Generate() (string, error) {
	v7, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("error generating uuid v7: %w", err)
	}

	return v7.String(), nil
}
