package comb

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Any consumes exactly one character and yields it as a string. It fails at
// end of input. The cursor is a byte offset; Any consumes one UTF-8 rune.
var Any = NewParser("any character", func(st State, index int) Result {
	if index >= len(st.Text) {
		return Failure(index, "any character")
	}
	r, size := utf8.DecodeRuneInString(st.Text[index:])
	return Success(index+size, string(r))
})

// All consumes everything that remains and yields it. It never fails.
var All = NewParser("all remaining input", func(st State, index int) Result {
	if index >= len(st.Text) {
		return Success(len(st.Text), "")
	}
	return Success(len(st.Text), st.Text[index:])
})

// EOF succeeds with a nil value, consuming nothing, when the cursor is at
// end of input; otherwise it fails.
var EOF = NewParser("end of input", func(st State, index int) Result {
	if index < len(st.Text) {
		return Failure(index, "end of input")
	}
	return Success(index, nil)
})

// String matches s exactly at the cursor, consuming and yielding it. On
// failure the expected description is the quoted literal.
func String(s string) *Parser {
	name := "'" + s + "'"
	return NewParser(name, func(st State, index int) Result {
		if index+len(s) <= len(st.Text) && st.Text[index:index+len(s)] == s {
			return Success(index+len(s), s)
		}
		return Failure(index, name)
	})
}

// Regexp matches pattern anchored at the cursor, consuming the whole match
// and yielding the given capture group (group 0, the full match, when
// omitted). The pattern never scans ahead: it either matches starting
// exactly at the cursor or the parser fails. The pattern must compile;
// an invalid pattern or group is a construction error.
func Regexp(pattern string, group ...int) *Parser {
	g := 0
	switch len(group) {
	case 0:
	case 1:
		g = group[0]
	default:
		panic("comb: Regexp accepts at most one capture group")
	}
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	if g < 0 || g > re.NumSubexp() {
		panic("comb: Regexp: pattern /" + pattern + "/ has no capture group " + strconv.Itoa(g))
	}
	name := "/" + pattern + "/"
	return NewParser(name, func(st State, index int) Result {
		m := re.FindStringSubmatch(st.Text[index:])
		if m == nil {
			return Failure(index, name)
		}
		return Success(index+len(m[0]), m[g])
	})
}

// Test consumes one character when pred holds for it, given the current
// environment, and yields it. It fails when pred rejects the character or
// the cursor is at end of input. Wrap the result in Desc to give the
// predicate a better error message.
func Test(pred func(r rune, env any) bool) *Parser {
	if pred == nil {
		panic("comb: Test requires a predicate")
	}
	const name = "a matching character"
	return NewParser(name, func(st State, index int) Result {
		if index >= len(st.Text) {
			return Failure(index, name)
		}
		r, size := utf8.DecodeRuneInString(st.Text[index:])
		if !pred(r, st.Env) {
			return Failure(index, name)
		}
		return Success(index+size, string(r))
	})
}

// Index yields the current cursor offset as an int, consuming nothing.
var Index = NewParser("index", func(st State, index int) Result {
	return Success(index, index)
})

// Position is a cursor offset resolved to a 1-based line and column.
// Column counts runes since the last newline.
type Position struct {
	Offset int
	Line   int
	Column int
}

// LineCol yields the current cursor as a Position, consuming nothing.
var LineCol = NewParser("line and column", func(st State, index int) Result {
	return Success(index, PositionAt(st.Text, index))
})

// PositionAt resolves a byte offset in text to a Position by counting the
// newlines in the preceding prefix.
func PositionAt(text string, index int) Position {
	if index > len(text) {
		index = len(text)
	}
	prefix := text[:index]
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return Position{
		Offset: index,
		Line:   strings.Count(prefix, "\n") + 1,
		Column: utf8.RuneCountInString(prefix[lineStart:]) + 1,
	}
}

// Succeed always succeeds with v, consuming nothing.
func Succeed(v any) *Parser {
	return NewParser("success", func(st State, index int) Result {
		return Success(index, v)
	})
}

// Fail always fails with the given description, consuming nothing.
func Fail(desc string) *Parser {
	return NewParser(desc, func(st State, index int) Result {
		return Failure(index, desc)
	})
}
