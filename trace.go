package comb

// Tracer observes parser invocations. When a tracer is supplied through
// WithTracer, Run calls Enter before a parser's behavior and Exit after,
// passing the unchanged result. The wrapper is pure: it never alters parse
// outcomes, and costs nothing when no tracer is set.
//
// Nesting depth is available through State.Depth; it is carried in the
// by-value State, so tracing stays correct under reentrant and concurrent
// parses.
type Tracer interface {
	Enter(p *Parser, st State, index int)
	Exit(p *Parser, st State, index int, result Result)
}

// TraceFunc adapts a pair of callbacks to the Tracer interface. Either
// callback may be nil.
type TraceFunc struct {
	OnEnter func(p *Parser, st State, index int)
	OnExit  func(p *Parser, st State, index int, result Result)
}

func (t TraceFunc) Enter(p *Parser, st State, index int) {
	if t.OnEnter != nil {
		t.OnEnter(p, st, index)
	}
}

func (t TraceFunc) Exit(p *Parser, st State, index int, result Result) {
	if t.OnExit != nil {
		t.OnExit(p, st, index, result)
	}
}
