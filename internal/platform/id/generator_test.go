package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestPrefixed_NewID(t *testing.T) {
	value, err := Prefixed{Prefix: "sqd_"}.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(value, "sqd_") {
		t.Fatalf("expected sqd_ prefix, got %s", value)
	}
}
