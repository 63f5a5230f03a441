package cmds

import (
	"os"
	"os/signal"
	"syscall"

	"chatwidget/internal/stub"

	"github.com/spf13/cobra"
)

func newStubCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stand-in for the chat backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(true)
			if err != nil {
				return err
			}
			defer a.Close()

			if port != 0 {
				a.cfg.Stub.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return stub.Run(ctx, a.cfg.Stub)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides stub.port)")
	return cmd
}
