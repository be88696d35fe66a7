package format

import (
	"strings"
	"unicode/utf8"
)

// Window returns a fixed-width view of text around the span that starts at
// byte offset and covers highlight bytes. The result is always exactly
// width runes: context padding fills what the span does not, split between
// the sides by leftBias (0 puts all context on the right, 1 on the left),
// and space-padded where the text runs out.
//
// When the span itself is wider than the window, overflowLeftBias selects
// which part survives: 1 anchors the window at the span's start, 0 at its
// end. Newlines, carriage returns and tabs are flattened to spaces so the
// view stays a single line.
func Window(text string, offset, highlight, width int, leftBias, overflowLeftBias float64) string {
	if width <= 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	if highlight < 0 {
		highlight = 0
	}
	if offset+highlight > len(text) {
		highlight = len(text) - offset
	}

	runes := []rune(flatten(text))
	spanStart := utf8.RuneCountInString(text[:offset])
	spanLen := utf8.RuneCountInString(text[offset : offset+highlight])

	var windowStart int
	if spanLen > width {
		overflow := spanLen - width
		windowStart = spanStart + int(float64(overflow)*(1-overflowLeftBias)+0.5)
	} else {
		context := width - spanLen
		windowStart = spanStart - int(float64(context)*leftBias+0.5)
		if windowStart+width > len(runes) {
			windowStart = len(runes) - width
		}
		if windowStart < 0 {
			windowStart = 0
		}
	}

	var sb strings.Builder
	sb.Grow(width)
	for i := windowStart; i < windowStart+width; i++ {
		if i < len(runes) {
			sb.WriteRune(runes[i])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func flatten(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, text)
}
