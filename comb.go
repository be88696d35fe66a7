// Package comb is a backtracking parser combinator library.
//
// A grammar is built by composing primitive parsers (String, Regexp, Any)
// with combinators (Seq, Alt, Times, Map) into a single root parser, which
// is then run against an in-memory string:
//
//	dog := comb.Seq(
//	    comb.String("the "),
//	    comb.Alt(comb.String("big"), comb.String("small")),
//	    comb.String(" dog"))
//
//	res := dog.Parse("the big dog")
//
// Parsing is plain recursive descent: alternatives are tried in order and
// the first success wins, with arbitrary lookahead and backtracking but no
// support for left recursion and no exploration of ambiguous parses. When
// every alternative fails, failures are merged so that the attempt that
// consumed the most input provides the diagnostics.
//
// An arbitrary environment value can be threaded through a parse (see
// Parse's WithEnv option, From, SubEnv, and the *Env combinator variants),
// so parsing behavior can depend on, and evolve with, caller context.
//
// Parsers are constructed once and may be run any number of times,
// concurrently; the single exception is Replace, which mutates a parser in
// place and must not race with a parse that can reach its target.
package comb

import "strconv"

// Behavior is the raw matching function of a parser: attempt a match in
// st.Text starting at index and report the outcome. Behaviors must not
// mutate st or any previously returned Result.
type Behavior func(st State, index int) Result

// Parser is a composable unit of parsing behavior. The zero value is not
// usable; construct parsers with NewParser, the primitives, or the
// combinators. Parser identity is pointer identity.
type Parser struct {
	name string
	run  Behavior
}

// NewParser builds a parser directly from a behavior function. This is the
// escape hatch for primitives that cannot be expressed through the stock
// combinators. The name is used in diagnostics and traces.
func NewParser(name string, run Behavior) *Parser {
	if run == nil {
		panic("comb: NewParser requires a behavior function")
	}
	return &Parser{name: name, run: run}
}

// Name returns the parser's display name.
func (p *Parser) Name() string { return p.name }

// Named overrides the parser's display name and returns the same parser.
// Intended for use while assembling a grammar.
func (p *Parser) Named(name string) *Parser {
	p.name = name
	return p
}

func (p *Parser) String() string { return p.name }

// State carries the per-invocation context of a parse. It is passed by
// value down the call tree, so environment scoping and trace depth are pure
// push-down and never visible to sibling calls.
type State struct {
	// Text is the full input being parsed.
	Text string
	// Env is the caller-supplied environment value. It is treated as
	// immutable; combinators that change it for nested scopes derive a new
	// value instead (see SubEnv, SeqEnv, TimesEnv).
	Env any

	tracer Tracer
	depth  int
}

// Depth reports how many traced parser invocations enclose the current one.
func (st State) Depth() int { return st.depth }

// Run is the partial-match entry point: it runs the parser's raw behavior
// at index and succeeds as soon as the parser's own grammar matches,
// regardless of remaining input. Combinators always invoke their children
// through Run. Running a declared-but-unresolved parser panics.
func (p *Parser) Run(st State, index int) Result {
	if p == nil {
		panic("comb: Run called on a nil parser")
	}
	if p.run == nil {
		panic("comb: parser " + strconv.Quote(p.name) + " has no behavior; resolve it with Replace before parsing")
	}
	if st.tracer == nil {
		return p.run(st, index)
	}
	inner := st
	inner.depth++
	st.tracer.Enter(p, st, index)
	res := p.run(inner, index)
	st.tracer.Exit(p, st, index, res)
	return res
}

// Option configures a call to Parse.
type Option func(*parseConfig)

type parseConfig struct {
	env    any
	start  int
	tracer Tracer
}

// WithEnv supplies the environment value threaded through the parse.
func WithEnv(env any) Option {
	return func(c *parseConfig) { c.env = env }
}

// WithStart sets the cursor offset at which parsing begins (default 0).
func WithStart(index int) Option {
	return func(c *parseConfig) { c.start = index }
}

// WithTracer enables instrumentation: tr's Enter and Exit hooks run around
// every parser invocation. Tracing never alters parse outcomes.
func WithTracer(tr Tracer) Option {
	return func(c *parseConfig) { c.tracer = tr }
}

// Parse is the complete-parse entry point: it runs the parser against text
// and additionally requires the cursor to end up at end-of-input. It is
// equivalent to sequencing p with EOF and keeping only p's value.
func (p *Parser) Parse(text string, opts ...Option) Result {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	st := State{Text: text, Env: cfg.env, tracer: cfg.tracer}
	res := p.Run(st, cfg.start)
	if !res.OK {
		return res
	}
	if end := EOF.Run(st, res.Index); !end.OK {
		return end
	}
	return Success(res.Index, res.Value)
}
