package comb

import (
	"reflect"
	"testing"
)

type traceEvent struct {
	kind  string
	name  string
	index int
	depth int
	ok    bool
}

func collectTrace(p *Parser, text string) ([]traceEvent, Result) {
	var events []traceEvent
	tr := TraceFunc{
		OnEnter: func(p *Parser, st State, index int) {
			events = append(events, traceEvent{"enter", p.Name(), index, st.Depth(), false})
		},
		OnExit: func(p *Parser, st State, index int, result Result) {
			events = append(events, traceEvent{"exit", p.Name(), index, st.Depth(), result.OK})
		},
	}
	res := p.Parse(text, WithTracer(tr))
	return events, res
}

func TestTraceDoesNotAlterOutcome(t *testing.T) {
	p := Alt(Seq(String("a"), String("b")), Regexp(`[0-9]+`))
	for _, input := range []string{"ab", "42", "a!", ""} {
		plain := p.Parse(input)
		_, traced := collectTrace(p, input)
		if !reflect.DeepEqual(plain, traced) {
			t.Errorf("Parse(%q): traced = %+v, plain = %+v", input, traced, plain)
		}
	}
}

func TestTraceEnterExitPairing(t *testing.T) {
	p := Seq(String("a"), String("b")).Named("pair")
	events, res := collectTrace(p, "ab")
	if !res.OK {
		t.Fatalf("Parse failed: %+v", res)
	}

	want := []traceEvent{
		{"enter", "pair", 0, 0, false},
		{"enter", "'a'", 0, 1, false},
		{"exit", "'a'", 0, 1, true},
		{"enter", "'b'", 1, 1, false},
		{"exit", "'b'", 1, 1, true},
		{"exit", "pair", 0, 0, true},
		{"enter", "end of input", 2, 0, false},
		{"exit", "end of input", 2, 0, true},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v\nwant %+v", events, want)
	}
}

func TestTraceDepthIsPerCall(t *testing.T) {
	// depth is carried in the by-value State, so a reentrant parse started
	// from inside a callback does not disturb the outer trace
	inner := String("x")
	p := Map(String("x"), func(value, _ any) any {
		inner.Parse("x") // untraced, must not touch outer depth
		return value
	}).Named("outer")

	events, res := collectTrace(p, "x")
	if !res.OK {
		t.Fatalf("Parse failed: %+v", res)
	}
	for _, ev := range events {
		if ev.name == "'x'" && ev.depth != 1 {
			t.Errorf("child depth = %d, want 1 (%+v)", ev.depth, ev)
		}
	}
}

func TestTraceFuncNilCallbacks(t *testing.T) {
	res := String("a").Parse("a", WithTracer(TraceFunc{}))
	if !res.OK {
		t.Errorf("Parse = %+v", res)
	}
}
