package comb

import (
	"fmt"
	"strconv"
	"strings"
)

// Unlimited removes the upper bound of Times.
const Unlimited = -1

// Seq runs each parser in order, each starting where the previous one
// stopped, and yields the ordered slice of their values. The first failure
// ends the sequence and propagates, merged against the results seen so far,
// so a deep failure inside a sequence still reports the furthest offset it
// reached.
func Seq(parsers ...*Parser) *Parser {
	return SeqEnv(nil, parsers...)
}

// SeqEnv is Seq with environment chaining: after each successful step the
// environment for the remaining steps becomes derive(stepValue, env). The
// caller's environment is not affected.
func SeqEnv(derive func(value, env any) any, parsers ...*Parser) *Parser {
	checkParsers("Seq", parsers)
	name := "seq(" + joinNames(parsers) + ")"
	return NewParser(name, func(st State, index int) Result {
		values := make([]any, 0, len(parsers))
		sub := st
		cur := index
		var best *Result
		for _, p := range parsers {
			res := p.Run(sub, cur)
			m := merge(res, best)
			if !m.OK {
				return m
			}
			best = &m
			values = append(values, res.Value)
			cur = res.Index
			if derive != nil {
				sub.Env = derive(res.Value, sub.Env)
			}
		}
		return Success(cur, values)
	})
}

// Times runs p repeatedly from the current cursor and yields the slice of
// collected values. The first min repetitions are mandatory: a failure
// before min successes fails the whole combinator. Past min, repetition is
// greedy but a failure merely stops it; the combinator succeeds with
// whatever was collected and does not backtrack. max may be Unlimited.
//
// An unbounded repetition whose body succeeds without consuming input would
// never terminate; that is a usage violation and panics.
func Times(p *Parser, min, max int) *Parser {
	return TimesEnv(nil, p, min, max)
}

// Repeat runs p zero or more times. It is Times(p, 0, Unlimited).
func Repeat(p *Parser) *Parser {
	return TimesEnv(nil, p, 0, Unlimited)
}

// TimesEnv is Times with environment chaining, applied after every
// successful repetition as in SeqEnv.
func TimesEnv(derive func(value, env any) any, p *Parser, min, max int) *Parser {
	if p == nil {
		panic("comb: Times requires a parser")
	}
	if min < 0 {
		panic("comb: Times: min must be >= 0")
	}
	if max != Unlimited && max < min {
		panic("comb: Times: max must be >= min")
	}
	name := fmt.Sprintf("times(%d..%d, %s)", min, max, p.name)
	if max == Unlimited {
		name = fmt.Sprintf("times(%d.., %s)", min, p.name)
	}
	return NewParser(name, func(st State, index int) Result {
		values := []any{}
		sub := st
		cur := index
		var best *Result
		for n := 0; max == Unlimited || n < max; n++ {
			res := p.Run(sub, cur)
			m := merge(res, best)
			if !res.OK {
				if n < min {
					return m
				}
				break
			}
			if max == Unlimited && res.Index == cur {
				panic("comb: unbounded repetition of " + strconv.Quote(p.name) + " matched without consuming input")
			}
			best = &m
			values = append(values, res.Value)
			cur = res.Index
			if derive != nil {
				sub.Env = derive(res.Value, sub.Env)
			}
		}
		return Success(cur, values)
	})
}

// Alt tries each parser in order from the same cursor and yields the first
// success. When every alternative fails, the merged failure is returned:
// the furthest failure wins, and ties accumulate expected descriptions.
// Alt requires at least one alternative.
func Alt(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		panic("comb: Alt requires at least one alternative")
	}
	checkParsers("Alt", parsers)
	name := "alt(" + joinNames(parsers) + ")"
	return NewParser(name, func(st State, index int) Result {
		var best *Result
		for _, p := range parsers {
			res := p.Run(st, index)
			if res.OK {
				return res
			}
			m := merge(res, best)
			best = &m
		}
		return *best
	})
}

// Except matches allowed at the current cursor, unless forbidden matches
// there first. When forbidden matches, the combinator fails naming it;
// only the fact that it matched matters, not its value. Otherwise allowed's
// result is returned verbatim, with failure descriptions adjusted to
// mention the exclusion. This is negative lookahead composed with a
// positive parser.
func Except(allowed, forbidden *Parser) *Parser {
	if allowed == nil || forbidden == nil {
		panic("comb: Except requires both parsers")
	}
	name := allowed.name + " (except " + forbidden.name + ")"
	return NewParser(name, func(st State, index int) Result {
		if res := forbidden.Run(st, index); res.OK {
			return Failure(index, "something that is not "+forbidden.name)
		}
		res := allowed.Run(st, index)
		if res.OK {
			return res
		}
		out := res
		out.Expected = make([]string, len(res.Expected))
		for i, d := range res.Expected {
			out.Expected[i] = d + " (except " + forbidden.name + ")"
		}
		return out
	})
}

func checkParsers(op string, parsers []*Parser) {
	for i, p := range parsers {
		if p == nil {
			panic(fmt.Sprintf("comb: %s: parser %d is nil", op, i))
		}
	}
}

func joinNames(parsers []*Parser) string {
	names := make([]string, len(parsers))
	for i, p := range parsers {
		names[i] = p.name
	}
	return strings.Join(names, ", ")
}
