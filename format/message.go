// Package format renders parse failures and traces for human consumption.
// It is a collaborator of the parsing core, not part of it: everything here
// can be replaced without touching how parsing works.
package format

import (
	"fmt"
	"strings"

	"github.com/dhamidi/comb"
)

// snippetLen is how much of the offending input a failure message shows.
const snippetLen = 10

// Message renders a failure as a single line:
//
//	expected 'a' at character 3, got 'xyz...'
//	expected one of 'a', 'b' at character 0, got end of input
//
// Merged failures list every accumulated description after "one of". The
// snippet is truncated with "..." past ten characters. For a successful
// result Message returns the empty string.
func Message(text string, res comb.Result) string {
	if res.OK {
		return ""
	}
	expected := res.Expected[0]
	if len(res.Expected) > 1 {
		expected = "one of " + strings.Join(res.Expected, ", ")
	}
	got := ", got end of input"
	if res.Index < len(text) {
		snippet := text[res.Index:]
		suffix := ""
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
			suffix = "..."
		}
		got = fmt.Sprintf(", got '%s%s'", snippet, suffix)
	}
	return fmt.Sprintf("expected %s at character %d%s", expected, res.Index, got)
}
