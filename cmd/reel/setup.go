package main

import (
	"fmt"
	"os"

	"reel/internal/config"

	"github.com/spf13/cobra"
)

// NewSetupCmd writes a starter config file.
func NewSetupCmd() *cobra.Command {
	var force bool

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.New().Save(path); err != nil {
				return err
			}
			fmt.Printf("✨ Wrote %s\n", path)
			return nil
		},
	}

	setupCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return setupCmd
}
