package comb

// Map runs p and, on success, replaces its value with fn(value, env).
// Failures pass through unchanged.
func Map(p *Parser, fn func(value, env any) any) *Parser {
	if p == nil {
		panic("comb: Map requires a parser")
	}
	if fn == nil {
		panic("comb: Map requires a function")
	}
	return NewParser(p.name, func(st State, index int) Result {
		res := p.Run(st, index)
		if !res.OK {
			return res
		}
		return Success(res.Index, fn(res.Value, st.Env))
	})
}

// Desc runs p and, on failure, discards whatever the inner grammar would
// have reported in favor of the single literal text. Use it to give a
// composite grammar one clean top-level error message. The failure offset
// is preserved.
func Desc(p *Parser, text string) *Parser {
	if p == nil {
		panic("comb: Desc requires a parser")
	}
	return NewParser(text, func(st State, index int) Result {
		res := p.Run(st, index)
		if res.OK {
			return res
		}
		return Failure(res.Index, text)
	})
}

// Span pairs a parsed value with the byte offsets of the input it covered.
type Span struct {
	Start int
	Value any
	End   int
}

// Mark runs p and wraps its value in a Span recording the source range it
// consumed.
func Mark(p *Parser) *Parser {
	if p == nil {
		panic("comb: Mark requires a parser")
	}
	m := Map(Seq(Index, p, Index), func(value, _ any) any {
		parts := value.([]any)
		return Span{Start: parts[0].(int), Value: parts[1], End: parts[2].(int)}
	})
	return m.Named("mark(" + p.name + ")")
}

// LineColSpan pairs a parsed value with the line/column positions of the
// input it covered.
type LineColSpan struct {
	Start Position
	Value any
	End   Position
}

// LineColMark is Mark with line/column positions instead of byte offsets.
func LineColMark(p *Parser) *Parser {
	if p == nil {
		panic("comb: LineColMark requires a parser")
	}
	m := Map(Seq(LineCol, p, LineCol), func(value, _ any) any {
		parts := value.([]any)
		return LineColSpan{Start: parts[0].(Position), Value: parts[1], End: parts[2].(Position)}
	})
	return m.Named("mark(" + p.name + ")")
}
