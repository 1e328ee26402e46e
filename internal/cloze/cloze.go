// Package cloze finds hidden spans inside card text.
package cloze

import (
	"iter"
	"strings"
	"unicode"
)

// Style selects how hidden spans are delimited.
type Style int

const (
	// TripleBrace hides text written as {{{hidden}}}.
	TripleBrace Style = iota
	// TripleParen hides text written as (((hidden))). Text after the span is
	// not shown, so siblings are revealed progressively.
	TripleParen
	// Lines hides one line at a time with surrounding lines as context.
	Lines
)

func (s Style) String() string {
	switch s {
	case TripleBrace:
		return "brace"
	case TripleParen:
		return "paren"
	case Lines:
		return "lines"
	}
	return "unknown"
}

const delimLen = 3

// Span is one hidden region. Start and End are byte offsets of the whole
// marker (delimiters included) in the scanned text; for Lines they bound the
// hidden line.
type Span struct {
	Start  int
	End    int
	Before string
	Hidden string
	After  string
}

// ContextStart is the offset where Before begins.
func (s Span) ContextStart() int {
	return s.Start - len(s.Before)
}

// ContextEnd is the offset where After ends.
func (s Span) ContextEnd() int {
	return s.End + len(s.After)
}

// Extractor scans text for spans of one style. Context is the number of
// surrounding lines shown for the Lines style and is ignored otherwise.
type Extractor struct {
	Style   Style
	Context int
}

// Spans yields every span of text in order with its zero-based index. Each
// call to the returned sequence starts a fresh scan.
func (e Extractor) Spans(text string) iter.Seq2[int, Span] {
	return func(yield func(int, Span) bool) {
		switch e.Style {
		case TripleBrace:
			delimited(text, "{{{", "}}}", true, yield)
		case TripleParen:
			delimited(text, "(((", ")))", false, yield)
		case Lines:
			lines(text, max(e.Context, 0), yield)
		}
	}
}

func delimited(text, open, closing string, withAfter bool, yield func(int, Span) bool) {
	cursor := 0
	for i := 0; ; i++ {
		rel := strings.Index(text[cursor:], open)
		if rel < 0 {
			return
		}
		start := cursor + rel
		rel = strings.Index(text[start:], closing)
		if rel < 0 {
			return
		}
		closeAt := start + rel
		hiddenEnd := closeAt
		end := closeAt + delimLen
		// A backslash right before the closing delimiter escapes it: the
		// character after the delimiter completes the marker.
		if text[closeAt-1] == '\\' {
			hiddenEnd = closeAt - 1
			if end < len(text) {
				end++
			}
		}

		span := Span{
			Start:  start,
			End:    end,
			Before: text[:start],
			Hidden: text[start+delimLen : hiddenEnd],
		}
		if withAfter {
			span.After = text[end:]
		}
		cursor = end
		if !yield(i, span) {
			return
		}
	}
}

// lineStarts returns the offset of the first non-space character of every
// non-blank line.
func lineStarts(text string) []int {
	var starts []int
	pos := 0
	for {
		rel := strings.IndexFunc(text[pos:], func(r rune) bool { return !unicode.IsSpace(r) })
		if rel < 0 {
			return starts
		}
		pos += rel
		starts = append(starts, pos)
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			return starts
		}
		pos += nl
	}
}

func lines(text string, context int, yield func(int, Span) bool) {
	starts := lineStarts(text)
	lineEnd := func(i int) int {
		i = min(i, len(starts)-1)
		if nl := strings.IndexByte(text[starts[i]:], '\n'); nl >= 0 {
			return starts[i] + nl
		}
		return len(text)
	}

	for i, start := range starts {
		first := starts[max(i-context, 0)]
		end := lineEnd(i)
		last := lineEnd(i + context)
		span := Span{
			Start:  start,
			End:    end,
			Before: text[first:start],
			Hidden: text[start:end],
			After:  text[end:last],
		}
		if !yield(i, span) {
			return
		}
	}
}

// Render replaces every marker of style in text with its hidden content.
// Lines text has no markers and is returned unchanged.
func Render(text string, style Style) string {
	if style == Lines {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, span := range (Extractor{Style: style}).Spans(text) {
		b.WriteString(text[prev:span.Start])
		b.WriteString(span.Hidden)
		prev = span.End
	}
	if prev == 0 {
		return text
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Detect reports which delimited style text uses. Braces win when both
// styles are present.
func Detect(text string) (Style, bool) {
	if strings.Contains(text, "{{{") && strings.Contains(text, "}}}") {
		return TripleBrace, true
	}
	if strings.Contains(text, "(((") && strings.Contains(text, ")))") {
		return TripleParen, true
	}
	return 0, false
}

// Toggle swaps brace markers for paren markers or the reverse. Text with
// neither is returned unchanged.
func Toggle(text string) string {
	switch {
	case strings.Contains(text, "{{{"):
		return strings.NewReplacer("{{{", "(((", "}}}", ")))").Replace(text)
	case strings.Contains(text, "((("):
		return strings.NewReplacer("(((", "{{{", ")))", "}}}").Replace(text)
	}
	return text
}
