package cmds

import (
	"fmt"

	"chatwidget/internal/config"
	"chatwidget/internal/storage"
	"chatwidget/pkg/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	baseURL    string
}

// app is what every subcommand needs after configuration is loaded.
type app struct {
	cfg   *config.Config
	store storage.Store
}

func (o *rootOptions) load(logToStdout bool) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.baseURL != "" {
		cfg.Service.BaseURL = o.baseURL
	}

	logFile := cfg.Log.File
	if logToStdout {
		logFile = ""
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, logFile); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &app{cfg: cfg, store: storage.Open(cfg.Storage)}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warnf("Failed to close storage: %v", err)
	}
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "chatwidget",
		Short:         "Terminal chat widget for the shopping assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "./configs/config.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.baseURL, "endpoint", "", "chat backend base URL (overrides service.base_url)")

	root.AddCommand(
		newChatCommand(opts),
		newAskCommand(opts),
		newThemeCommand(opts),
		newStubCommand(opts),
		newHealthCommand(opts),
	)

	return root
}
