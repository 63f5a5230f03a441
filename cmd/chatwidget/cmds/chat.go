package cmds

import (
	"context"

	"chatwidget/internal/service"
	"chatwidget/internal/tui"
	"chatwidget/internal/widget"
	"chatwidget/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.load(false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w := widget.New(
		widget.SettingsFromConfig(a.cfg.Widget),
		a.store,
		widget.WithSystemDark(tui.DetectSystemDark()),
	)
	client := service.NewClient(a.cfg.Service)

	m := tui.New(ctx, w, client, tui.Options{
		GreetingDelay:     a.cfg.Widget.GreetingDelay,
		FollowSystemTheme: true,
	})

	logger.Infof("Starting chat widget against %s", a.cfg.Service.BaseURL)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx)).Run()
	return err
}
