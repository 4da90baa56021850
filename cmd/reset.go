package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/wrongset"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the wrong-answer set",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ws := wrongset.Open(cmd.Context(), rt.store.KV(), rt.logger.Logger)
		n := ws.Len()
		ws.Clear(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d wrong answer(s).\n", n)
		return nil
	},
}
