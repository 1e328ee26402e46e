// Package source reads cards out of markdown notes and writes edited cards
// back into them.
package source

import (
	"iter"
	"strings"

	"github.com/lipsanen/tmemo/internal/model"
)

// DefaultHeading is the root prefix used when a file name is not known.
const DefaultHeading = "File"

const blockDelimiter = ":::"

// entry is a card found in the source text with its byte span.
type entry struct {
	content model.Content
	start   int
	end     int
	line    int
	meta    string // body of the metadata comment preceding the card
}

type heading struct {
	title string
	level int
}

// headingStack tracks the heading path that prefixes every card.
type headingStack []heading

func newHeadingStack(root string) headingStack {
	if root == "" {
		root = DefaultHeading
	}
	return headingStack{{title: root}}
}

// push places h after the last heading of a lower level and drops
// everything that was nested below it.
func (s headingStack) push(h heading) headingStack {
	i := 1
	for i < len(s) && s[i].level < h.level {
		i++
	}
	return append(s[:i], h)
}

func (s headingStack) prefix() string {
	titles := make([]string, len(s))
	for i, h := range s {
		titles[i] = h.title
	}
	return strings.Join(titles, " > ")
}

// parseHeading recognizes "## title": a run of '#' followed by whitespace
// and a non-empty title.
func parseHeading(line string) (heading, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level == len(line) {
		return heading{}, false
	}
	if c := line[level]; c != ' ' && c != '\t' {
		return heading{}, false
	}
	title := strings.TrimSpace(line[level:])
	if title == "" {
		return heading{}, false
	}
	return heading{title: title, level: level}, true
}

// parseMetaComment returns the body of "<!-- tmemo: ... -->".
func parseMetaComment(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "<!--") || !strings.HasSuffix(t, "-->") {
		return "", false
	}
	t = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(t, "<!--"), "-->"))
	body, ok := strings.CutPrefix(t, "tmemo:")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(body), true
}

type blockState int

const (
	outside blockState = iota
	inFront
	inBack
)

// scan walks input line by line and yields every card in order. Lines end
// at "\n"; a trailing "\r" is not part of the line.
func scan(input, root string) iter.Seq[entry] {
	return func(yield func(entry) bool) {
		headings := newHeadingStack(root)
		state := outside
		var front, back strings.Builder
		var blockStart, blockLine int
		var meta string

		emit := func(e entry) bool {
			e.meta, meta = meta, ""
			return yield(e)
		}

		lineNum := 0
		for pos := 0; pos < len(input); {
			lineNum++
			lineStart := pos
			line := input[pos:]
			if nl := strings.IndexByte(line, '\n'); nl >= 0 {
				line = line[:nl]
				pos += nl + 1
			} else {
				pos = len(input)
			}
			line = strings.TrimSuffix(line, "\r")

			if line == blockDelimiter {
				switch state {
				case outside:
					state, blockStart, blockLine = inFront, lineStart, lineNum
				case inFront:
					state = inBack
				case inBack:
					e := entry{
						content: model.Content{
							Prefix:   headings.prefix(),
							Front:    front.String(),
							Back:     back.String(),
							Editable: true,
						},
						start: blockStart,
						end:   lineStart + len(line),
						line:  blockLine,
					}
					front.Reset()
					back.Reset()
					state = outside
					if !emit(e) {
						return
					}
				}
				continue
			}

			switch state {
			case inFront:
				front.WriteString(line)
				front.WriteByte('\n')
				continue
			case inBack:
				back.WriteString(line)
				back.WriteByte('\n')
				continue
			}

			if idx := strings.Index(line, ":: "); idx >= 0 {
				e := entry{
					content: model.Content{
						Prefix:   headings.prefix(),
						Front:    line[:idx],
						Back:     line[idx+3:],
						Editable: true,
					},
					start: lineStart,
					end:   lineStart + len(line),
					line:  lineNum,
				}
				if !emit(e) {
					return
				}
				continue
			}

			if h, ok := parseHeading(line); ok {
				headings = headings.push(h)
				continue
			}

			if body, ok := parseMetaComment(line); ok {
				meta = body
			}
		}
	}
}
