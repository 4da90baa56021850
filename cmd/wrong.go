package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/wrongset"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "Inspect the wrong-answer set",
}

var wrongListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the ids of questions answered wrongly",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ws := wrongset.Open(cmd.Context(), rt.store.KV(), rt.logger.Logger)
		out := cmd.OutOrStdout()
		if ws.Len() == 0 {
			fmt.Fprintln(out, "No wrong answers recorded.")
			return nil
		}
		for _, id := range ws.IDs() {
			fmt.Fprintln(out, id)
		}
		fmt.Fprintf(out, "\n%d question(s)\n", ws.Len())
		return nil
	},
}

func init() {
	wrongCmd.AddCommand(wrongListCmd)
}
