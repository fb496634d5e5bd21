package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) affirmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "affirm",
		Short: "Print one hopeful affirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.env.Stdout, a.client.GenerateAffirmation(cmd.Context()))
			return nil
		},
	}
}
