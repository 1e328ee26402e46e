package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/model"
)

var day = date.FromYMD(2024, time.January, 1)

func contents(cards []model.Card) []model.Content {
	out := make([]model.Content, len(cards))
	for i, c := range cards {
		out[i] = c.Content
	}
	return out
}

func TestParseInline(t *testing.T) {
	input := "front:: back\nfront2:: back2\nnotparsed::notparsed2\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Content{
		{Prefix: "File", Front: "front", Back: "back", Editable: true},
		{Prefix: "File", Front: "front2", Back: "back2", Editable: true},
	}, contents(cards))
	assert.Equal(t, day, cards[0].State.DateAdded)
	assert.True(t, cards[0].State.FirstReview())
}

func TestParseHeadings(t *testing.T) {
	input := "# heading\n## heading2\nfront:: back\nfront2:: back2\n\nnotparsed::notparsed2\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, c := range cards {
		assert.Equal(t, "File > heading > heading2", c.Content.Prefix)
	}
}

func TestParseHeadingStack(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sibling replaces", "# a\n## b\n# c\nq:: r\n", "notes.md > c"},
		{"shallower replaces deeper", "## b\n# a\nq:: r\n", "notes.md > a"},
		{"skipped level", "# a\n### c\n## b\nq:: r\n", "notes.md > a > b"},
		{"nested", "# a\n## b\n### c\nq:: r\n", "notes.md > a > b > c"},
		{"no headings", "q:: r\n", "notes.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := Parse(tt.input, day, "notes.md")
			require.NoError(t, err)
			require.Len(t, cards, 1)
			assert.Equal(t, tt.want, cards[0].Content.Prefix)
		})
	}
}

func TestParseHeadingLine(t *testing.T) {
	h, ok := parseHeading("# test")
	require.True(t, ok)
	assert.Equal(t, heading{title: "test", level: 1}, h)

	h, ok = parseHeading("## test  ")
	require.True(t, ok)
	assert.Equal(t, heading{title: "test", level: 2}, h)

	for _, line := range []string{" # test", "#test", "#", "##   ", "", "#te st"} {
		_, ok := parseHeading(line)
		assert.False(t, ok, "%q", line)
	}
}

func TestParseMultiline(t *testing.T) {
	input := "askdjasldkjasldkjqweqwee\n" +
		":::\n" +
		"front line1\n" +
		"front line2\n" +
		":::\n" +
		"back line1\n" +
		"back line2\n" +
		":::\n" +
		"asdlaskjdjlasjda\n" +
		"qweqwe\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "front line1\nfront line2\n", cards[0].Content.Front)
	assert.Equal(t, "back line1\nback line2\n", cards[0].Content.Back)
}

func TestParseBlockContentIsLiteral(t *testing.T) {
	input := ":::\n# not a heading\na:: b\n:::\nback\n:::\nx:: y\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Content{
		{Prefix: "File", Front: "# not a heading\na:: b\n", Back: "back\n", Editable: true},
		{Prefix: "File", Front: "x", Back: "y", Editable: true},
	}, contents(cards))
}

func TestParseUnterminatedBlock(t *testing.T) {
	cards, err := Parse("q:: a\n:::\nfront\n:::\nback\n", day, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "q", cards[0].Content.Front)
}

func TestParseCRLF(t *testing.T) {
	cards, err := Parse("# h\r\nq:: a\r\n:::\r\nf\r\n:::\r\nb\r\n:::\r\n", day, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Content{
		{Prefix: "File > h", Front: "q", Back: "a", Editable: true},
		{Prefix: "File > h", Front: "f\n", Back: "b\n", Editable: true},
	}, contents(cards))
}

func TestParseMetadata(t *testing.T) {
	input := "<!-- tmemo: {card_type: line, surrounding_lines: 1} -->\n" +
		":::\nPoem\n:::\none\ntwo\n:::\n" +
		"plain:: card\n"

	cards, err := Parse(input, day, "poems.md")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, &model.Metadata{CardType: model.CardTypeLine, SurroundingLines: 1}, cards[0].Content.Metadata)
	assert.Nil(t, cards[1].Content.Metadata)
}

func TestParseMetadataDefaults(t *testing.T) {
	input := "<!-- tmemo: {card_type: line} -->\nq:: a\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, model.DefaultSurroundingLines, cards[0].Content.Metadata.SurroundingLines)

	cards, err = Parser{SurroundingLines: 3}.Parse(input, day, "")
	require.NoError(t, err)
	assert.Equal(t, 3, cards[0].Content.Metadata.SurroundingLines)

	input = "<!-- tmemo: {card_type: line, surrounding_lines: 0} -->\nq:: a\n"
	cards, err = Parser{SurroundingLines: 3}.Parse(input, day, "")
	require.NoError(t, err)
	assert.Equal(t, 0, cards[0].Content.Metadata.SurroundingLines)
}

func TestParseOtherCommentsIgnored(t *testing.T) {
	cards, err := Parse("<!-- just a note -->\nq:: a\n", day, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Nil(t, cards[0].Content.Metadata)
}

func TestParseInvalidMetadata(t *testing.T) {
	for _, input := range []string{
		"<!-- tmemo: {card_type: [ -->\nq:: a\n",
		"<!-- tmemo: {surrounding_lines: -1} -->\nq:: a\n",
	} {
		_, err := Parse(input, day, "notes.md")
		assert.ErrorIs(t, err, ErrInvalidMetadata, input)
	}
}

func TestParsedLineCardExpands(t *testing.T) {
	input := "<!-- tmemo: {card_type: line, surrounding_lines: 1} -->\n" +
		":::\nPoem\n:::\none\ntwo\nthree\nfour\n:::\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	c, err := model.NewCollection(cards)
	require.NoError(t, err)
	assert.Len(t, c.BaseCards, 1)
	assert.Len(t, c.Cards, 4)
}
