package model

import (
	"fmt"
	"strings"

	"github.com/lipsanen/tmemo/internal/cloze"
	"github.com/lipsanen/tmemo/internal/fsrs"
)

// Placeholder replaces the hidden span on a derived card's front.
const Placeholder = "{...}"

// Collection is a freshly parsed set of cards. BaseCards holds every root
// that was expanded; derived cards in Cards point into it by index.
type Collection struct {
	BaseCards []Card `json:"base_cards"`
	Cards     []Card `json:"cards"`
}

// NewCollection expands cloze roots into derived cards. Roots without spans
// are reviewable as they are.
func NewCollection(cards []Card) (Collection, error) {
	c := Collection{Cards: make([]Card, 0, len(cards))}
	for _, card := range cards {
		derived, err := Expand(card, len(c.BaseCards))
		if err != nil {
			return Collection{}, err
		}
		if len(derived) == 0 {
			c.Cards = append(c.Cards, card)
			continue
		}
		c.Cards = append(c.Cards, derived...)
		c.BaseCards = append(c.BaseCards, card)
	}
	return c, nil
}

// Expand derives one card per hidden span of root, linked to base. It
// returns nil when root has no spans.
func Expand(root Card, base int) ([]Card, error) {
	if md := root.Content.Metadata; md != nil && md.CardType != "" {
		if md.CardType != CardTypeLine {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCardType, md.CardType)
		}
		return expandLines(root, base, md.SurroundingLines), nil
	}
	style, ok := cloze.Detect(root.Content.Back)
	if !ok {
		return nil, nil
	}
	return expandDelimited(root, base, style), nil
}

func derivedCard(root Card, base, child int, front, back string) Card {
	return Card{
		Content: Content{
			Prefix:     root.Content.Prefix,
			Front:      front,
			Back:       back,
			Base:       &base,
			ChildIndex: &child,
		},
		State: fsrs.NewState(root.State.DateAdded),
	}
}

func expandDelimited(root Card, base int, style cloze.Style) []Card {
	var out []Card
	for i, span := range (cloze.Extractor{Style: style}).Spans(root.Content.Back) {
		var b strings.Builder
		b.WriteString(root.Content.Front)
		b.WriteString("\n\n")
		b.WriteString(cloze.Render(span.Before, style))
		b.WriteString(Placeholder)
		b.WriteString(cloze.Render(span.After, style))
		out = append(out, derivedCard(root, base, i, b.String(), span.Hidden))
	}
	return out
}

// expandLines hides one line of the back per card. The root front leads each
// derived front so identical lines under different roots get distinct keys,
// and the back is the bare line since it has no delimiters to strip.
func expandLines(root Card, base, surrounding int) []Card {
	text := root.Content.Back
	var out []Card
	for i, span := range (cloze.Extractor{Style: cloze.Lines, Context: surrounding}).Spans(text) {
		var b strings.Builder
		b.WriteString(root.Content.Front)
		b.WriteString("\n\n")
		if span.ContextStart() != 0 {
			b.WriteString("...\n")
		}
		b.WriteString(span.Before)
		b.WriteString(Placeholder)
		b.WriteString(span.After)
		if span.ContextEnd() < len(text)-1 {
			b.WriteString("\n...")
		}
		out = append(out, derivedCard(root, base, i, b.String(), span.Hidden))
	}
	return out
}
