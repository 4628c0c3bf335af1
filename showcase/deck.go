package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/carousel/pkg/graphics"
)

// DeckCard is one card in the demo deck.
type DeckCard struct {
	ID    string
	Title string
	Color graphics.Color
}

// ItemID returns the stable identity used for selection tracking.
func (c DeckCard) ItemID() string {
	return c.ID
}

type deckFile struct {
	Cards []cardSpec `yaml:"cards"`
}

type cardSpec struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color"`
}

// ParseDeck decodes a YAML card list. Colors are hex ("#RRGGBB",
// "#AARRGGBB") or SVG color names. Cards without an id are assigned a
// generated one so selection tracking still works.
func ParseDeck(data []byte) ([]DeckCard, error) {
	var file deckFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("deck: %w", err)
	}

	cards := make([]DeckCard, 0, len(file.Cards))
	for i, spec := range file.Cards {
		color, err := graphics.ParseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("deck: card %d: %w", i, err)
		}
		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		cards = append(cards, DeckCard{
			ID:    id,
			Title: spec.Title,
			Color: color,
		})
	}
	return cards, nil
}

// LoadDeck reads and parses a deck file from disk.
func LoadDeck(path string) ([]DeckCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deck: %w", err)
	}
	return ParseDeck(data)
}
