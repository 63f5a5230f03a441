package cmds

import (
	"fmt"
	"time"

	"chatwidget/internal/service"

	"github.com/spf13/cobra"
)

func newHealthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the chat backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(false)
			if err != nil {
				return err
			}
			defer a.Close()

			client := service.NewClient(a.cfg.Service)

			health, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s (model %s, %s)\n",
				health.Status, health.Model, health.Timestamp.Format(time.RFC3339))

			stats, err := client.Stats(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "stats unavailable: %v\n", err)
				return nil
			}
			last := "never"
			if stats.LastAPICall != nil {
				last = stats.LastAPICall.Format(time.RFC3339)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api calls: %d (last %s)\n", stats.APICalls, last)
			return nil
		},
	}
}
