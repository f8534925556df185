package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nsco/internal/baseconv"
	"nsco/internal/charset"
)

func parseBase(s string, cs *charset.Charset) (int, error) {
	b, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: bases must be integers between 2 and %d", charset.ErrInvalidBase, s, cs.Len())
	}
	if err := cs.CheckBase(b); err != nil {
		return 0, err
	}
	return b, nil
}

func newConvertCommand(a *app) *cobra.Command {
	var decimal bool

	cmd := &cobra.Command{
		Use:     "convert <number> <from> <to>",
		Short:   "convert a number between two bases of the charset",
		Example: "nsco convert FF 16 2",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			num := args[0]

			from, err := parseBase(args[1], a.charset)
			if err != nil {
				return fmt.Errorf("base from: %w", err)
			}
			to, err := parseBase(args[2], a.charset)
			if err != nil {
				return fmt.Errorf("base to: %w", err)
			}

			res, err := baseconv.ConvertChecked(a.charset, num, from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if decimal {
				fmt.Fprintf(out, "Number: %s, Base from: %d, Base to: %d, Decimal: %s, Result: %s\n",
					num, from, to, baseconv.Parse(a.charset, num, from), res)
				return nil
			}
			fmt.Fprintln(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&decimal, "decimal", "d", false, "also print the value in decimal")

	return cmd
}
