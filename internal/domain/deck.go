package domain

import (
	"errors"
	"fmt"
)

// Common validation errors for Deck
var (
	ErrEmptyDeckID      = errors.New("deck ID cannot be empty")
	ErrDeckWithoutCards = errors.New("deck must contain at least one card")
	ErrBlankCard        = errors.New("flashcard front and back cannot be empty")
)

// Flashcard is a single front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is a generated flashcard deck artifact.
type Deck struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Cards []Flashcard `json:"cards"`
}

// Validate checks the structural invariants of a deck.
func (d *Deck) Validate() error {
	if d.ID == "" {
		return ErrEmptyDeckID
	}
	if len(d.Cards) == 0 {
		return ErrDeckWithoutCards
	}
	for i, card := range d.Cards {
		if card.Front == "" || card.Back == "" {
			return fmt.Errorf("%w: card %d", ErrBlankCard, i+1)
		}
	}
	return nil
}
