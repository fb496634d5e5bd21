package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tmc/lighthouse/api"
)

func (a *app) modelsCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models that can be used with --model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.client.APIKey == "" {
				fmt.Fprintln(a.env.Stderr, "No API key configured; showing built-in models.")
				for _, name := range api.KnownModels(filter) {
					fmt.Fprintln(a.env.Stdout, name)
				}
				return nil
			}
			models, err := a.client.ListModels(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list models: %w", err)
			}
			w := tabwriter.NewWriter(a.env.Stdout, 0, 0, 2, ' ', 0)
			for _, m := range models {
				fmt.Fprintf(w, "%s\t%s\n", m.Name, m.DisplayName)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only list models whose name contains `text`")
	return cmd
}
