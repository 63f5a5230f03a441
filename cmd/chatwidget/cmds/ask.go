package cmds

import (
	"errors"
	"fmt"
	"strings"

	"chatwidget/internal/format"
	"chatwidget/internal/service"
	"chatwidget/internal/widget"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Send one query and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(false)
			if err != nil {
				return err
			}
			defer a.Close()

			w := widget.New(widget.SettingsFromConfig(a.cfg.Widget), a.store)
			if in := w.OnInputChanged(strings.Join(args, " ")); !in.CanSend() {
				return fmt.Errorf("query must be between 1 and %d characters, got %d", in.MaxChars, in.Length)
			}

			out, err := w.Send(cmd.Context(), service.NewClient(a.cfg.Service))
			if err != nil {
				return err
			}
			if out.Banner != nil {
				return errors.New(out.Banner.Message)
			}

			if asHTML {
				fmt.Fprintln(cmd.OutOrStdout(), format.FormatMessage(out.Reply.Text))
				return nil
			}
			link := lipgloss.NewStyle().Underline(true)
			fmt.Fprintln(cmd.OutOrStdout(), format.FormatTerminal(out.Reply.Text, link))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "print the reply as sanitised HTML")
	return cmd
}
