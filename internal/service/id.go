package service

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces order ids.
type IDGenerator interface {
	NewOrderID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns ids of the form "BV" + 32 upper-case hex digits of
// a UUIDv7, so ids sort by creation time.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "BV" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}
