// Package model defines cards, their content and the collections that
// expand cloze cards into reviewable ones.
package model

import (
	"strings"
)

// Editability says how a card's content may be changed.
type Editability int

const (
	// Editable content is written back to its source as-is.
	Editable Editability = iota
	// BaseEditable content is derived; edits go to its base card.
	BaseEditable
	// NotEditable content has no unique source location.
	NotEditable
)

func (e Editability) String() string {
	switch e {
	case Editable:
		return "editable"
	case BaseEditable:
		return "base-editable"
	default:
		return "not-editable"
	}
}

// CardTypeLine selects line-by-line cloze derivation.
const CardTypeLine = "line"

// DefaultSurroundingLines is the line context used when metadata omits it.
const DefaultSurroundingLines = 2

// Metadata is optional per-card configuration attached in the source file.
type Metadata struct {
	CardType         string `json:"card_type" yaml:"card_type"`
	SurroundingLines int    `json:"surrounding_lines" yaml:"surrounding_lines"`
}

// Key identifies a card across re-parses.
type Key struct {
	Prefix string
	Front  string
}

// Content is the text of a card plus its link to a base card when derived.
type Content struct {
	Prefix     string    `json:"prefix"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Editable   bool      `json:"editable"`
	Base       *int      `json:"base,omitempty"`
	ChildIndex *int      `json:"child_index,omitempty"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Key returns the identity used for reconciliation.
func (c *Content) Key() Key {
	return Key{Prefix: c.Prefix, Front: c.Front}
}

// Editability classifies c.
func (c *Content) Editability() Editability {
	switch {
	case c.Editable:
		return Editable
	case c.Base != nil:
		return BaseEditable
	default:
		return NotEditable
	}
}

// String renders c in its markdown source form.
func (c *Content) String() string {
	if strings.Contains(c.Front, "\n") {
		return ":::\n" + c.Front + ":::\n" + c.Back + ":::"
	}
	return c.Front + ":: " + c.Back
}

// SourceFile returns the file name part of the prefix.
func (c *Content) SourceFile() string {
	name, _, _ := strings.Cut(c.Prefix, ">")
	return strings.TrimRight(name, " \t")
}

// FixNewlines makes multi-line content end each block with a newline so it
// renders back into a valid ::: block.
func (c *Content) FixNewlines() {
	if !strings.Contains(c.Front, "\n") && !strings.Contains(c.Back, "\n") {
		return
	}
	if !strings.HasSuffix(c.Front, "\n") {
		c.Front += "\n"
	}
	if !strings.HasSuffix(c.Back, "\n") {
		c.Back += "\n"
	}
}

// SingleLineFront returns the front with newlines shown as \n.
func (c *Content) SingleLineFront() string {
	return strings.ReplaceAll(c.Front, "\n", `\n`)
}
