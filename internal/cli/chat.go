package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmc/lighthouse"
	"github.com/tmc/lighthouse/session"
)

func (a *app) chatCommand() *cobra.Command {
	var (
		input      string
		transcript string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the 3AM Friend one line at a time",
		Long: `Chat reads messages from standard input, one per line, and prints each
reply. Blank lines are skipped. It is used automatically when standard
input is not a terminal.`,
		Example: `  echo "I can't sleep" | lighthouse chat
  lighthouse chat --input notes.txt --transcript markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var format session.Format
			if transcript != "" {
				f, err := session.ParseFormat(transcript)
				if err != nil {
					return err
				}
				format = f
			}
			in := a.env.Stdin
			if input != "" {
				f, err := os.Open(a.path(input))
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return a.lineMode(cmd.Context(), in, format)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "read messages from `file` instead of stdin")
	cmd.Flags().StringVar(&transcript, "transcript", "", "print the conversation on exit as markdown, text or json")
	return cmd
}

// lineMode runs a headless conversation. A non-empty format prints the
// transcript when input ends.
func (a *app) lineMode(ctx context.Context, in io.Reader, format session.Format) error {
	s, err := lighthouse.RunLineMode(ctx, a.client, in, a.env.Stdout)
	if err != nil {
		return err
	}
	if format == "" {
		return nil
	}
	fmt.Fprintln(a.env.Stdout, "---")
	return session.Export(a.env.Stdout, s, format)
}
