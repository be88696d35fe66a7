package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhamidi/comb"
	"github.com/dhamidi/comb/calc"
	"github.com/dhamidi/comb/format"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var vars []string
	var trace bool
	var traceWidth int

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			env := calc.Env{Vars: map[string]float64{}}
			for _, pair := range vars {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("variable %q is not of the form name=value", pair)
				}
				n, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("variable %q: %w", name, err)
				}
				env.Vars[name] = n
			}

			opts := []comb.Option{comb.WithEnv(env)}
			if trace {
				opts = append(opts, comb.WithTracer(format.NewTraceWriter(os.Stderr).WithWidth(traceWidth)))
			}

			res := calc.Expression().Parse(src, opts...)
			if !res.OK {
				return errors.New(format.Message(src, res))
			}

			fmt.Println(res.Value)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "define a variable as name=value (repeatable)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print a parse trace to stderr")
	cmd.Flags().IntVar(&traceWidth, "trace-width", 40, "width of the input window in trace lines")

	return cmd
}
