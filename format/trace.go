package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/comb"
)

// TraceWriter is a comb.Tracer that renders every parser invocation as an
// indented enter/exit line, with a Window view of the input at the cursor:
//
//	> alt('a', 'b') @ 0 |the big dog             |
//	  > 'a' @ 0 |the big dog             |
//	  < 'a' failed @ 0: expected 'a' at character 0, got 'the big do...'
//
// Output is plain text; pipe it through whatever coloring you like.
type TraceWriter struct {
	w     io.Writer
	width int
}

// NewTraceWriter creates a trace renderer with a 24-rune input window.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w, width: 24}
}

// WithWidth sets the width of the input window in each trace line.
func (t *TraceWriter) WithWidth(width int) *TraceWriter {
	t.width = width
	return t
}

func (t *TraceWriter) Enter(p *comb.Parser, st comb.State, index int) {
	fmt.Fprintf(t.w, "%s> %s @ %d |%s|\n",
		indent(st.Depth()), p.Name(), index,
		Window(st.Text, index, 1, t.width, 0.25, 1))
}

func (t *TraceWriter) Exit(p *comb.Parser, st comb.State, index int, result comb.Result) {
	if result.OK {
		fmt.Fprintf(t.w, "%s< %s ok @ %d\n", indent(st.Depth()), p.Name(), result.Index)
		return
	}
	fmt.Fprintf(t.w, "%s< %s failed @ %d: %s\n",
		indent(st.Depth()), p.Name(), result.Index, Message(st.Text, result))
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
