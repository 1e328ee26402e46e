package model

import (
	"strings"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
)

// Card is reviewable content together with its memory state.
type Card struct {
	Content Content    `json:"content"`
	State   fsrs.State `json:"fsrs_state"`
}

// NewCard returns an editable, never reviewed card added on day.
func NewCard(prefix, front, back string, day date.Date) Card {
	return Card{
		Content: Content{Prefix: prefix, Front: front, Back: back, Editable: true},
		State:   fsrs.NewState(day),
	}
}

// Contains reports whether word occurs in the prefix, front or back.
func (c *Card) Contains(word string) bool {
	return strings.Contains(c.Content.Front, word) ||
		strings.Contains(c.Content.Back, word) ||
		strings.Contains(c.Content.Prefix, word)
}

// CompareFront orders cards by front text.
func CompareFront(a, b Card) int {
	return strings.Compare(a.Content.Front, b.Content.Front)
}
