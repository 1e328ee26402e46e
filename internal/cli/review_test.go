package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/model"
	"github.com/lipsanen/tmemo/internal/rng"
)

func reviewDeck(t *testing.T, fronts ...string) (*deck.Deck, date.Date) {
	t.Helper()
	day := date.FromYMD(2024, time.January, 1)
	d := deck.New()
	for _, f := range fronts {
		d.Cards = append(d.Cards, model.NewCard("notes.md", f, "answer to "+f, day))
	}
	return d, day
}

func TestReviewLoopAnswersEveryCard(t *testing.T) {
	d, day := reviewDeck(t, "a", "b")
	r := rng.New(7)
	d.StartReview(day, r)

	var out bytes.Buffer
	n, err := reviewLoop(strings.NewReader("\n3\n\n4\n"), &out, d, day, r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, d.ActiveCount())
	assert.Contains(t, out.String(), "No more cards to review.")
	assert.Contains(t, out.String(), "3) Good")

	for _, c := range d.Cards {
		assert.False(t, c.State.FirstReview())
		assert.True(t, c.State.ReviewDate.IsOnOrAfter(day))
	}
}

func TestReviewLoopAgainKeepsCardActive(t *testing.T) {
	d, day := reviewDeck(t, "a")
	r := rng.New(7)
	d.StartReview(day, r)

	n, err := reviewLoop(strings.NewReader("\n1\n\n3\n"), &bytes.Buffer{}, d, day, r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, d.Cards[0].State.ReviewLog, 2)
}

func TestReviewLoopRepromptsInvalidAnswer(t *testing.T) {
	d, day := reviewDeck(t, "a")
	r := rng.New(7)
	d.StartReview(day, r)

	var out bytes.Buffer
	n, err := reviewLoop(strings.NewReader("\n9\nx\nb\n"), &out, d, day, r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, strings.Count(out.String(), "answer with 1, 2, 3, 4, b or q"))
	assert.True(t, d.Cards[0].State.Buried)
}

func TestReviewLoopQuit(t *testing.T) {
	d, day := reviewDeck(t, "a", "b")
	r := rng.New(7)
	d.StartReview(day, r)

	n, err := reviewLoop(strings.NewReader("\n3\nq\n"), &bytes.Buffer{}, d, day, r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, d.ActiveCount())
}

func TestReviewLoopEndOfInput(t *testing.T) {
	d, day := reviewDeck(t, "a")
	r := rng.New(7)
	d.StartReview(day, r)

	n, err := reviewLoop(strings.NewReader(""), &bytes.Buffer{}, d, day, r)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, d.Cards[0].State.FirstReview())
}

func TestUnescapeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb", unescapeNewlines(`a\nb`))
	assert.Equal(t, "plain", unescapeNewlines("plain"))
}
