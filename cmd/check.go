package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/deck"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the question bank and report what was parsed",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		pool, err := rt.loader().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Source:    %s\n", pool.Source())
		fmt.Fprintf(out, "Questions: %d\n", pool.Len())
		fmt.Fprintf(out, "Skipped:   %d\n", len(pool.Skipped()))

		qs := pool.Questions()
		if banks := deck.Banks(qs); len(banks) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Banks")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			for _, b := range banks {
				n := 0
				for _, q := range qs {
					if deck.InBank(q, b) {
						n++
					}
				}
				fmt.Fprintf(out, "  %-30s %5d\n", b, n)
			}
		}

		if skipped := pool.Skipped(); len(skipped) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Skipped rows")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			for _, s := range skipped {
				fmt.Fprintf(out, "  line %-5d %s\n", s.Line, s.Reason)
			}
		}
		return pool.Require()
	},
}
