package deck

import (
	"fmt"

	"github.com/lipsanen/tmemo/internal/model"
)

// EditTarget returns the content a user edits for the card at index: the
// card itself when editable, otherwise its base card.
func (d *Deck) EditTarget(index int) (model.Content, error) {
	if index < 0 || index >= len(d.Cards) {
		return model.Content{}, fmt.Errorf("%w: %d", ErrCardNotFound, index)
	}
	c := d.Cards[index].Content
	switch c.Editability() {
	case model.Editable:
		return c, nil
	case model.BaseEditable:
		if *c.Base < 0 || *c.Base >= len(d.BaseCards) {
			return model.Content{}, fmt.Errorf("%w: %d", ErrInvalidBase, *c.Base)
		}
		return d.BaseCards[*c.Base].Content, nil
	}
	return model.Content{}, ErrNotEditable
}

// EditCard replaces the content of the card at index. For a derived card the
// content replaces its base card instead, see EditBaseCard.
func (d *Deck) EditCard(index int, content model.Content) error {
	if index < 0 || index >= len(d.Cards) {
		return fmt.Errorf("%w: %d", ErrCardNotFound, index)
	}
	card := &d.Cards[index]
	switch card.Content.Editability() {
	case model.Editable:
		content.Prefix = card.Content.Prefix
		content.Editable = true
		content.Base = nil
		content.ChildIndex = nil
		content.FixNewlines()
		d.edits = append(d.edits, Edit{Old: card.Content, New: content})
		card.Content = content
		return nil
	case model.BaseEditable:
		return d.EditBaseCard(*card.Content.Base, model.Card{Content: content})
	}
	return ErrNotEditable
}

// EditBaseCard replaces the base card at base and re-derives its children.
// Each derived card is matched to an existing one by child index and updated
// in place, keeping its memory state; unmatched children are appended.
// Existing children beyond the new span count are left as they are. When the
// new content has no cloze spans at all, the plain root is appended to Cards
// so it can be reviewed before the next reconciliation.
func (d *Deck) EditBaseCard(base int, root model.Card) error {
	if base < 0 || base >= len(d.BaseCards) {
		return fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}
	old := d.BaseCards[base]
	root.Content.Prefix = old.Content.Prefix
	root.Content.Base = nil
	root.Content.ChildIndex = nil
	if root.Content.Metadata == nil {
		root.Content.Metadata = old.Content.Metadata
	}
	root.Content.FixNewlines()
	root.State = old.State

	children, err := model.Expand(root, base)
	if err != nil {
		return err
	}

	d.edits = append(d.edits, Edit{Old: old.Content, New: root.Content})
	d.BaseCards[base] = root

	if len(children) == 0 {
		plain := root
		plain.Content.Editable = true
		d.Cards = append(d.Cards, plain)
		return nil
	}

	for _, child := range children {
		if i := d.childIndex(base, *child.Content.ChildIndex); i >= 0 {
			d.Cards[i].Content = child.Content
			continue
		}
		d.Cards = append(d.Cards, child)
	}
	return nil
}

func (d *Deck) childIndex(base, child int) int {
	for i := range d.Cards {
		c := &d.Cards[i].Content
		if c.Base != nil && *c.Base == base && c.ChildIndex != nil && *c.ChildIndex == child {
			return i
		}
	}
	return -1
}
