package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("book")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "book-") {
		t.Errorf("expected book- prefix, got %s", got)
	}
	// prefix + dash + 21-char nanoid
	if len(got) != len("book-")+21 {
		t.Errorf("unexpected length %d for %s", len(got), got)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := Generate("user")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestMustGenerate(t *testing.T) {
	id := MustGenerate("genre")
	if !strings.HasPrefix(id, "genre-") {
		t.Errorf("expected genre- prefix, got %s", id)
	}
}
