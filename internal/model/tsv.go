package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
)

// TSVColumns names the fixed columns of a card row. Review log entries
// follow as extra columns.
var TSVColumns = []string{
	"days_to_review", "difficulty", "stability", "prefix", "front", "back",
	"date_added", "complete_history", "last_review",
}

// Escape pairs are applied in order on encode and in reverse on decode.
// Literal backslash sequences go first so real control characters can take
// their place.
var escapePairs = [][2]string{
	{`\n`, `[\]n`},
	{`\t`, `[\]t`},
	{"\n", `\n`},
	{"\t", `\t`},
}

// EscapeField converts text to a single tab-free line.
func EscapeField(s string) string {
	for _, p := range escapePairs {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return s
}

// UnescapeField reverses EscapeField.
func UnescapeField(s string) string {
	for i := len(escapePairs) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, escapePairs[i][1], escapePairs[i][0])
	}
	return s
}

// TSVFields returns the row columns of c with dates relative to today.
func TSVFields(c *Card, today date.Date) []string {
	st := &c.State
	fields := []string{
		strconv.Itoa(st.ReviewDate.Sub(today)),
		strconv.FormatFloat(st.Difficulty, 'f', -1, 64),
		strconv.FormatFloat(st.Stability, 'f', -1, 64),
		c.Content.Prefix,
		EscapeField(c.Content.Front),
		EscapeField(c.Content.Back),
		strconv.Itoa(st.DateAdded.Sub(today)),
		strconv.FormatBool(st.CompleteHistory),
		strconv.Itoa(st.LastReview.Sub(today)),
	}
	for _, item := range st.ReviewLog {
		fields = append(fields, strconv.FormatInt(item.Encode(), 10))
	}
	return fields
}

// FormatTSV renders c as one tab-separated row.
func FormatTSV(c *Card, today date.Date) string {
	return strings.Join(TSVFields(c, today), "\t")
}

// ParseTSV parses a row produced by FormatTSV.
func ParseTSV(line string, today date.Date) (Card, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return ParseTSVFields(fields, today)
}

// ParseTSVFields parses already split row columns.
func ParseTSVFields(fields []string, today date.Date) (Card, error) {
	if len(fields) < len(TSVColumns) {
		return Card{}, fmt.Errorf("%w: %d columns, need %d", ErrMalformedRow, len(fields), len(TSVColumns))
	}

	card := NewCard(fields[3], UnescapeField(fields[4]), UnescapeField(fields[5]), today)
	st := &card.State

	relDate := func(i int) (date.Date, error) {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return date.Date{}, fmt.Errorf("%w: %s: %v", ErrMalformedRow, TSVColumns[i], err)
		}
		return today.AddDays(n)
	}
	parseFloat := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrMalformedRow, TSVColumns[i], err)
		}
		return v, nil
	}

	var err error
	if st.ReviewDate, err = relDate(0); err != nil {
		return Card{}, err
	}
	if st.Difficulty, err = parseFloat(1); err != nil {
		return Card{}, err
	}
	if st.Stability, err = parseFloat(2); err != nil {
		return Card{}, err
	}
	if st.DateAdded, err = relDate(6); err != nil {
		return Card{}, err
	}
	if st.CompleteHistory, err = strconv.ParseBool(fields[7]); err != nil {
		return Card{}, fmt.Errorf("%w: complete_history: %v", ErrMalformedRow, err)
	}
	if st.LastReview, err = relDate(8); err != nil {
		return Card{}, err
	}

	for _, f := range fields[len(TSVColumns):] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return Card{}, fmt.Errorf("%w: review log: %v", ErrMalformedRow, err)
		}
		item, err := fsrs.DecodeLogItem(v)
		if err != nil {
			return Card{}, err
		}
		st.ReviewLog = append(st.ReviewLog, item)
	}
	return card, nil
}
