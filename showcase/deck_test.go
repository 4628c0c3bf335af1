package main

import (
	"testing"

	"github.com/go-drift/carousel/pkg/graphics"
)

func TestParseDeck(t *testing.T) {
	data := []byte(`
cards:
  - id: aurora
    title: Aurora
    color: "#5E5CE6"
  - id: slate
    title: Slate
    color: slategray
`)
	cards, err := ParseDeck(data)
	if err != nil {
		t.Fatalf("ParseDeck returned error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].ID != "aurora" || cards[0].Title != "Aurora" {
		t.Errorf("unexpected first card: %+v", cards[0])
	}
	if cards[0].Color != graphics.Color(0xFF5E5CE6) {
		t.Errorf("expected color 0xFF5E5CE6, got %08X", uint32(cards[0].Color))
	}
	want, _ := graphics.ParseColor("slategray")
	if cards[1].Color != want {
		t.Errorf("named color mismatch: got %08X want %08X", uint32(cards[1].Color), uint32(want))
	}
}

func TestParseDeck_GeneratesMissingIDs(t *testing.T) {
	data := []byte(`
cards:
  - title: One
    color: "#FF0000"
  - title: Two
    color: "#00FF00"
`)
	cards, err := ParseDeck(data)
	if err != nil {
		t.Fatalf("ParseDeck returned error: %v", err)
	}
	if cards[0].ID == "" || cards[1].ID == "" {
		t.Fatal("expected generated ids for cards without one")
	}
	if cards[0].ID == cards[1].ID {
		t.Fatalf("generated ids must be unique, both were %q", cards[0].ID)
	}
}

func TestParseDeck_RejectsBadColor(t *testing.T) {
	data := []byte(`
cards:
  - id: bad
    title: Bad
    color: "not-a-color"
`)
	if _, err := ParseDeck(data); err == nil {
		t.Fatal("expected error for unknown color name")
	}
}

func TestParseDeck_RejectsBadYAML(t *testing.T) {
	if _, err := ParseDeck([]byte("cards: [")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
