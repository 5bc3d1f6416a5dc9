package utils

import "github.com/google/uuid"

// UUIDGenerator produces unique identifiers for batch run IDs and
// temporary file suffixes used by atomic writes.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7 string, falling back to a
// random UUIDv4 when the system clock refuses to cooperate.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
