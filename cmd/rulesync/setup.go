package main

import (
	"fmt"
	"os"

	"rulesync/internal/config"

	"github.com/spf13/cobra"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	var sourceDir string
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write the rulesync configuration file",
		Long:  `Write a rulesync.yaml pointing at the global rules directory, creating that directory if it does not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceDir == "" {
				return fmt.Errorf("--source-dir is required")
			}

			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(sourceDir, 0755); err != nil {
				return fmt.Errorf("failed to create global rules directory: %w", err)
			}

			cfg := config.New()
			cfg.GlobalRulesSourceDir = sourceDir
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			fmt.Printf("Global rules directory: %s\n", sourceDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", "", "global rules directory (created if missing)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}
