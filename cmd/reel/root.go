package main

import (
	"fmt"
	"time"

	"reel/internal/client"
	"reel/internal/config"
	"reel/internal/log"
	"reel/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	cfg          *config.Config
	flagAPI      string
	flagFilter   string
	flagMuted    bool
	flagRollback bool
)

// NewRootCmd creates the root command. Running it with no subcommand
// opens the feed.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reel",
		Short: "A vertical video feed for your terminal",
		Long: `
	'########::'########:'########:'##:::::::
	 ##.... ##: ##.....:: ##.....:: ##:::::::
	 ##:::: ##: ##::::::: ##::::::: ##:::::::
	 ########:: ######::: ######::: ##:::::::
	 ##.. ##::: ##...:::: ##...:::: ##:::::::
	 ##::. ##:: ##::::::: ##::::::: ##:::::::
	 ##:::. ##: ########: ########: ########:
	..:::::..::........::........::........::

Swipe through a short-video feed without leaving the terminal.
Drag with the mouse or use j/k; double-click to like.
		`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				fmt.Printf("⚠️ Warning: %v\n", err)
				fmt.Println("💡 Using default settings.")
				cfg = config.New()
			}
			applyFlags(cmd)
			return log.Setup(cfg.Log.File, cfg.Log.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeed()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/reel/config.yaml)")
	rootCmd.Flags().StringVar(&flagAPI, "api", "", "feed API base URL")
	rootCmd.Flags().StringVar(&flagFilter, "filter", "", "glob over author handle or caption")
	rootCmd.Flags().BoolVar(&flagMuted, "muted", false, "start muted")
	rootCmd.Flags().BoolVar(&flagRollback, "rollback", false, "revert optimistic toggles when a mutation fails")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewSetupCmd())

	return rootCmd
}

func applyFlags(cmd *cobra.Command) {
	if flagAPI != "" {
		cfg.API.BaseURL = flagAPI
	}
	if flagFilter != "" {
		cfg.Feed.Filter = flagFilter
	}
	if cmd.Flags().Changed("muted") {
		cfg.Behavior.StartMuted = flagMuted
	}
	if cmd.Flags().Changed("rollback") {
		cfg.Behavior.RollbackOnFailure = flagRollback
	}
}

func runFeed() error {
	api := client.New(cfg.API.BaseURL, cfg.RequestTimeout())

	var watcher *config.Watcher
	path := cfgFile
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			log.Warn("config hot-reload disabled: %v", err)
		} else {
			watcher = w
		}
	}

	model := tui.New(cfg, api, watcher)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	log.Info("starting feed against %s", cfg.API.BaseURL)
	start := time.Now()
	_, err := program.Run()
	log.Info("session ended after %s", time.Since(start).Round(time.Second))
	return err
}
