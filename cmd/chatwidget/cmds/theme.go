package cmds

import (
	"fmt"

	"chatwidget/internal/model"
	"chatwidget/internal/tui"
	"chatwidget/internal/widget"

	"github.com/spf13/cobra"
)

func newThemeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [show|toggle|light|dark|system]",
		Short:     "Show or change the persisted theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", "light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(false)
			if err != nil {
				return err
			}
			defer a.Close()

			theme := widget.NewThemeState(a.store, tui.DetectSystemDark())

			action := "show"
			if len(args) == 1 {
				action = args[0]
			}

			switch action {
			case "show":
			case "toggle":
				if _, err := theme.Toggle(); err != nil {
					return err
				}
			case "system":
				if err := theme.FollowSystem(); err != nil {
					return err
				}
			default:
				t, ok := model.ParseTheme(action)
				if !ok {
					return fmt.Errorf("unknown theme action %q", action)
				}
				if err := theme.Set(t); err != nil {
					return err
				}
			}

			source := "stored"
			if theme.FollowsSystem() {
				source = "system"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", theme.Current(), source)
			return nil
		},
	}
	return cmd
}
