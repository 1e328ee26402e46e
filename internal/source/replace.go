package source

import (
	"strings"

	"github.com/lipsanen/tmemo/internal/model"
)

// Replace rewrites the first card in input whose prefix, front and back
// equal old with the source form of updated. It reports whether a card was
// found.
func Replace(input, root string, old, updated model.Content) (string, bool) {
	for e := range scan(input, root) {
		c := e.content
		if c.Prefix != old.Prefix || c.Front != old.Front || c.Back != old.Back {
			continue
		}
		rendered := updated.String()
		if strings.Contains(input[e.start:e.end], "\r\n") {
			rendered = strings.ReplaceAll(rendered, "\n", "\r\n")
		}
		return input[:e.start] + rendered + input[e.end:], true
	}
	return input, false
}
