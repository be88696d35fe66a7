package comb

import (
	"reflect"
	"testing"
)

func TestFrom(t *testing.T) {
	// parsing behavior selected by the caller's environment
	p := From(func(env any) *Parser {
		return env.(map[string]*Parser)["word"]
	})

	lower := map[string]*Parser{"word": Regexp(`[a-z]+`)}
	upper := map[string]*Parser{"word": Regexp(`[A-Z]+`)}

	if got := p.Parse("abc", WithEnv(lower)); !got.OK || got.Value != "abc" {
		t.Errorf("lower env = %+v", got)
	}
	if got := p.Parse("ABC", WithEnv(upper)); !got.OK || got.Value != "ABC" {
		t.Errorf("upper env = %+v", got)
	}
	if got := p.Parse("abc", WithEnv(upper)); got.OK {
		t.Errorf("upper env on lowercase input should fail, got %+v", got)
	}
}

func TestFromForwardReference(t *testing.T) {
	// a grammar of balanced parens around an "x", tied together lazily
	var group *Parser
	expr := Alt(
		String("x"),
		From(func(any) *Parser { return group }),
	)
	group = Map(Seq(String("("), expr, String(")")), func(value, _ any) any {
		return value.([]any)[1]
	})

	if got := expr.Parse("((x))"); !got.OK || got.Value != "x" {
		t.Errorf("Parse(\"((x))\") = %+v", got)
	}
	if got := expr.Parse("((x)"); got.OK {
		t.Errorf("unbalanced input should fail, got %+v", got)
	}
}

func TestFromNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when lookup returns nil")
		}
	}()
	From(func(any) *Parser { return nil }).Parse("x")
}

func TestSubEnv(t *testing.T) {
	readEnv := NewParser("env", func(st State, index int) Result {
		return Success(index, st.Env)
	})
	scoped := SubEnv(readEnv, func(env any) any { return env.(int) + 1 })

	p := Seq(readEnv, scoped, readEnv)
	res := p.Run(State{Text: "", Env: 10}, 0)
	if !res.OK {
		t.Fatalf("Run failed: %+v", res)
	}
	if want := []any{10, 11, 10}; !reflect.DeepEqual(res.Value, want) {
		t.Errorf("environments = %v, want %v", res.Value, want)
	}
}

func TestChain(t *testing.T) {
	// the length digit decides how many characters follow
	length := Regexp(`[0-9]`)
	p := Chain(length, func(value, _ any) *Parser {
		n := int(value.(string)[0] - '0')
		return Times(Any, n, n)
	})

	got := p.Parse("3abc")
	if !got.OK || got.Index != 4 {
		t.Fatalf("Parse(\"3abc\") = %+v", got)
	}
	if want := []any{"a", "b", "c"}; !reflect.DeepEqual(got.Value, want) {
		t.Errorf("value = %v, want %v", got.Value, want)
	}

	if got := p.Parse("3ab"); got.OK {
		t.Errorf("short payload should fail, got %+v", got)
	}
	if got := p.Parse("x"); got.OK {
		t.Errorf("missing length should fail, got %+v", got)
	}
}

func TestChainSeesEnvironment(t *testing.T) {
	p := Chain(String("go:"), func(_, env any) *Parser {
		return env.(*Parser)
	})
	got := p.Parse("go:abc", WithEnv(Regexp(`[a-z]+`)))
	if !got.OK || got.Value != "abc" {
		t.Errorf("Parse = %+v", got)
	}
}
