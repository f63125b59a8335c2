package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/fixed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errMalformed = errors.New("malformed expression")

func (a *app) newCalcCmd() *cobra.Command {
	var prec int
	cmd := &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate an expression in prefix notation",
		Long: `Evaluates an expression written in prefix (Polish) notation with the
operators + - * and /. Operands are parsed with --precision fractional
digits; extra digits are dropped.

Example:
  fixed calc -- "* 10 + 1.23 4.56"
  fixed calc --precision 5 / 1 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("precision") {
				prec = a.cfg.Precision
			}
			input := strings.Join(args, " ")
			a.logger.Debug("evaluating", zap.String("expression", input), zap.Int("precision", prec))
			d, err := evaluate(input, prec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().IntVarP(&prec, "precision", "p", fixed.DefaultPrec, "Fractional digits of the operands")
	return cmd
}

func evaluate(input string, prec int) (fixed.Decimal, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return fixed.Decimal{}, fmt.Errorf("no tokens: %w", errMalformed)
	}
	stack := make([]fixed.Decimal, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		var err error
		switch tok := tokens[i]; tok {
		case "+", "-", "*", "/":
			stack, err = applyOperator(stack, tok)
		default:
			var d fixed.Decimal
			d, err = fixed.ParseExact(tok, prec)
			stack = append(stack, d)
		}
		if err != nil {
			return fixed.Decimal{}, fmt.Errorf("token %q: %w", tokens[i], err)
		}
	}
	if len(stack) != 1 {
		return fixed.Decimal{}, fmt.Errorf("%v values left on the stack: %w", len(stack), errMalformed)
	}
	return stack[0], nil
}

func applyOperator(stack []fixed.Decimal, op string) ([]fixed.Decimal, error) {
	if len(stack) < 2 {
		return nil, fmt.Errorf("not enough operands: %w", errMalformed)
	}
	left, right := stack[len(stack)-1], stack[len(stack)-2]
	stack = stack[:len(stack)-2]
	var r fixed.Decimal
	var err error
	switch op {
	case "+":
		r = left.Add(right)
	case "-":
		r = left.Sub(right)
	case "*":
		r = left.Mul(right)
	case "/":
		r, err = left.Quo(right)
	}
	if err != nil {
		return nil, fmt.Errorf("%v %v %v: %w", left, op, right, err)
	}
	return append(stack, r), nil
}
