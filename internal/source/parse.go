package source

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
	"github.com/lipsanen/tmemo/internal/model"
)

// ErrInvalidMetadata is returned for a metadata comment that does not decode.
var ErrInvalidMetadata = errors.New("source: invalid card metadata")

// Parser turns markdown text into cards.
type Parser struct {
	// SurroundingLines is used when a metadata comment does not set
	// surrounding_lines. Zero means model.DefaultSurroundingLines.
	SurroundingLines int
}

// metaComment mirrors model.Metadata so an omitted key can be told apart
// from an explicit zero.
type metaComment struct {
	CardType         string `yaml:"card_type"`
	SurroundingLines *int   `yaml:"surrounding_lines"`
}

// Parse returns the cards in input, all added on day. root is the first
// element of every prefix, usually the file name.
func (p Parser) Parse(input string, day date.Date, root string) ([]model.Card, error) {
	var cards []model.Card
	for e := range scan(input, root) {
		card := model.Card{Content: e.content, State: fsrs.NewState(day)}
		if e.meta != "" {
			md, err := p.metadata(e.meta)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", root, e.line, err)
			}
			card.Content.Metadata = md
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (p Parser) metadata(body string) (*model.Metadata, error) {
	var mc metaComment
	if err := yaml.Unmarshal([]byte(body), &mc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	md := &model.Metadata{CardType: strings.TrimSpace(mc.CardType)}
	switch {
	case mc.SurroundingLines != nil:
		if *mc.SurroundingLines < 0 {
			return nil, fmt.Errorf("%w: negative surrounding_lines", ErrInvalidMetadata)
		}
		md.SurroundingLines = *mc.SurroundingLines
	case p.SurroundingLines > 0:
		md.SurroundingLines = p.SurroundingLines
	default:
		md.SurroundingLines = model.DefaultSurroundingLines
	}
	return md, nil
}

// Parse parses input with the default Parser.
func Parse(input string, day date.Date, root string) ([]model.Card, error) {
	return Parser{}.Parse(input, day, root)
}
