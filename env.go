package comb

// From defers to the parser returned by lookup(env) at parse time. It is
// the primary mechanism both for forward-referencing a parser that has not
// been defined yet and for making parsing behavior configurable per caller.
// A lookup that returns nil is a programmer error and panics; it is never
// reported as a parse failure.
func From(lookup func(env any) *Parser) *Parser {
	if lookup == nil {
		panic("comb: From requires a lookup function")
	}
	return NewParser("from(env)", func(st State, index int) Result {
		p := lookup(st.Env)
		if p == nil {
			panic("comb: From lookup did not return a parser")
		}
		return p.Run(st, index)
	})
}

// SubEnv runs p with derive(env) in place of the ambient environment. The
// replacement is scoped to this one nested call: the ambient environment is
// untouched for everything outside it.
func SubEnv(p *Parser, derive func(env any) any) *Parser {
	if p == nil {
		panic("comb: SubEnv requires a parser")
	}
	if derive == nil {
		panic("comb: SubEnv requires a derive function")
	}
	return NewParser(p.name, func(st State, index int) Result {
		sub := st
		sub.Env = derive(st.Env)
		return p.Run(sub, index)
	})
}

// Chain runs p and, on success, delegates to the parser chosen by
// decide(value, env), starting where p stopped. It is From with the
// decision depending on a just-parsed value rather than only on the
// environment. Prefer From plus explicit environment derivation where
// either would do; Chain exists for parity with classical combinator
// libraries. A decide that returns nil panics.
func Chain(p *Parser, decide func(value, env any) *Parser) *Parser {
	if p == nil {
		panic("comb: Chain requires a parser")
	}
	if decide == nil {
		panic("comb: Chain requires a decide function")
	}
	return NewParser("chain("+p.name+")", func(st State, index int) Result {
		res := p.Run(st, index)
		if !res.OK {
			return res
		}
		next := decide(res.Value, st.Env)
		if next == nil {
			panic("comb: Chain decide did not return a parser")
		}
		return next.Run(st, res.Index)
	})
}
