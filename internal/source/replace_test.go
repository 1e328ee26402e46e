package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipsanen/tmemo/internal/model"
)

func TestReplaceSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lf", " test1:: test2\n", " best1:: best2\n"},
		{"crlf", "\r\n test1:: test2\r\n", "\r\n best1:: best2\r\n"},
		{"no trailing newline", "x\n test1:: test2", "x\n best1:: best2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := Parse(tt.input, day, "")
			require.NoError(t, err)
			require.Len(t, cards, 1)

			updated := cards[0].Content
			updated.Front = " best1"
			updated.Back = "best2"
			got, ok := Replace(tt.input, "", cards[0].Content, updated)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceIdempotent(t *testing.T) {
	input := ":::\n" +
		"front line1\n" +
		"\tfront line2\n" +
		":::\n" +
		"back line1\n" +
		"back line2\n" +
		"\n" +
		":::\n" +
		"\n" +
		"        test1 :: test2\n"

	cards, err := Parse(input, day, "")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, c := range cards {
		got, ok := Replace(input, "", c.Content, c.Content)
		require.True(t, ok)
		assert.Equal(t, input, got)
	}
}

func TestReplaceMultiline(t *testing.T) {
	input := "# h\n:::\nf\n:::\nb\n:::\ntail\n"
	old := model.Content{Prefix: "File > h", Front: "f\n", Back: "b\n"}
	updated := model.Content{Front: "g\nh\n", Back: "c\n"}

	got, ok := Replace(input, "", old, updated)
	require.True(t, ok)
	assert.Equal(t, "# h\n:::\ng\nh\n:::\nc\n:::\ntail\n", got)
}

func TestReplaceMultilineCRLF(t *testing.T) {
	input := ":::\r\nf\r\n:::\r\nb\r\n:::\r\n"
	old := model.Content{Prefix: "File", Front: "f\n", Back: "b\n"}
	updated := model.Content{Front: "g\n", Back: "b\n"}

	got, ok := Replace(input, "", old, updated)
	require.True(t, ok)
	assert.Equal(t, ":::\r\ng\r\n:::\r\nb\r\n:::\r\n", got)
}

func TestReplaceSingleWithMultiline(t *testing.T) {
	old := model.Content{Prefix: "File", Front: "a", Back: "b"}
	updated := model.Content{Front: "x\ny\n", Back: "z\n"}

	got, ok := Replace("a:: b\n", "", old, updated)
	require.True(t, ok)
	assert.Equal(t, ":::\nx\ny\n:::\nz\n:::\n", got)

	cards, err := Parse(got, day, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "x\ny\n", cards[0].Content.Front)
}

func TestReplaceNotFound(t *testing.T) {
	input := "# h\nq:: a\n"
	tests := []model.Content{
		{Prefix: "File", Front: "q", Back: "a"},
		{Prefix: "File > h", Front: "q", Back: "other"},
		{Prefix: "File > h", Front: "x", Back: "a"},
	}
	for _, old := range tests {
		got, ok := Replace(input, "", old, model.Content{Front: "n", Back: "n"})
		assert.False(t, ok)
		assert.Equal(t, input, got)
	}
}

func TestReplaceFirstMatchOnly(t *testing.T) {
	old := model.Content{Prefix: "File", Front: "q", Back: "a"}
	got, ok := Replace("q:: a\nq:: a\n", "", old, model.Content{Front: "q", Back: "b"})
	require.True(t, ok)
	assert.Equal(t, "q:: b\nq:: a\n", got)
}
