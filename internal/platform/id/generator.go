package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for squads, snapshots, boost usages and
// dispatch events.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// Prefixed decorates another generator with a readable prefix, e.g. "sqd_".
type Prefixed struct {
	Prefix string
	Next   Generator
}

func (p Prefixed) NewID() (string, error) {
	next := p.Next
	if next == nil {
		next = NewUUIDGenerator()
	}
	value, err := next.NewID()
	if err != nil {
		return "", err
	}
	return p.Prefix + value, nil
}
