package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmc/lighthouse/checkin"
)

func (a *app) checkinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Record a short check-in and describe how you seem",
		Long: `Checkin opens the camera (and the microphone when one is available),
records for five seconds, and asks the model to describe the emotions it
senses. Nothing is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &checkin.Runner{
				Analyzer: a.client,
				Device:   a.device(),
				Out:      a.env.Stderr,
				Interval: a.env.CheckinInterval,
			}
			result, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.env.Stdout, "✦ AI INSIGHT\n\"%s\"\n", result)
			return nil
		},
	}
}
