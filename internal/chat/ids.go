package chat

import "github.com/google/uuid"

// IDGenerator produces unique ids for history records. Injected so tests can
// supply deterministic ids.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
