// Package calc is an arithmetic expression grammar built from the comb
// combinators. It exists to exercise the library end to end: numbers,
// the four operators with the usual precedence, parentheses, and variables
// resolved from the parse environment.
package calc

import (
	"errors"
	"strconv"

	"github.com/dhamidi/comb"
	"github.com/dhamidi/comb/format"
)

// Env carries the variables an expression may reference.
type Env struct {
	Vars map[string]float64
}

// expression is declared up front so the parenthesized-group rule can
// reference it before it is defined; init ties the knot with Replace.
var expression = comb.Declare("expression")

func init() {
	ws := comb.Regexp(`[ \t\r\n]*`)
	lexeme := func(p *comb.Parser) *comb.Parser {
		return comb.Map(comb.Seq(p, ws), func(value, _ any) any {
			return value.([]any)[0]
		})
	}

	number := comb.Map(lexeme(comb.Desc(comb.Regexp(`[0-9]+(?:\.[0-9]+)?`), "a number")), func(value, _ any) any {
		n, _ := strconv.ParseFloat(value.(string), 64)
		return n
	})

	ident := comb.Desc(comb.Regexp(`[a-zA-Z_][a-zA-Z0-9_]*`), "a variable name")
	variable := comb.Chain(lexeme(ident), func(value, env any) *comb.Parser {
		name := value.(string)
		if e, ok := env.(Env); ok {
			if v, ok := e.Vars[name]; ok {
				return comb.Succeed(v)
			}
		}
		return comb.Fail("a defined variable")
	})

	group := comb.Map(
		comb.Seq(lexeme(comb.String("(")), expression, lexeme(comb.String(")"))),
		func(value, _ any) any { return value.([]any)[1] },
	)

	factor := comb.Alt(number, variable, group)
	term := binary(factor, comb.Alt(lexeme(comb.String("*")), lexeme(comb.String("/"))))
	sum := binary(term, comb.Alt(lexeme(comb.String("+")), lexeme(comb.String("-"))))

	comb.Replace(expression, comb.Map(comb.Seq(ws, sum), func(value, _ any) any {
		return value.([]any)[1]
	}))
}

// binary builds a left-associative operator chain: operand (op operand)*.
func binary(operand, op *comb.Parser) *comb.Parser {
	rest := comb.Repeat(comb.Seq(op, operand))
	return comb.Map(comb.Seq(operand, rest), func(value, _ any) any {
		parts := value.([]any)
		acc := parts[0].(float64)
		for _, step := range parts[1].([]any) {
			pair := step.([]any)
			rhs := pair[1].(float64)
			switch pair[0].(string) {
			case "+":
				acc += rhs
			case "-":
				acc -= rhs
			case "*":
				acc *= rhs
			case "/":
				acc /= rhs
			}
		}
		return acc
	})
}

// Expression returns the root parser of the grammar, for callers that want
// to run it themselves (with a tracer, from an offset, and so on).
func Expression() *comb.Parser { return expression }

// Eval parses src as a complete expression and computes its value. vars may
// be nil. A parse failure is returned as an error carrying the formatted
// failure message.
func Eval(src string, vars map[string]float64) (float64, error) {
	res := expression.Parse(src, comb.WithEnv(Env{Vars: vars}))
	if !res.OK {
		return 0, errors.New(format.Message(src, res))
	}
	return res.Value.(float64), nil
}
