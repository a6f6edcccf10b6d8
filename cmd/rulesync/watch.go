package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rulesync/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Keep a project's rules in sync with the global directory",
		Long:  `Watch the configured global rules directory and re-run the load operation into the given project whenever a rule file changes.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, err := resolveProjectPath(path, args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			resyncer, err := watch.NewResyncer(newService(), cfg, projectPath)
			if err != nil {
				return err
			}

			fmt.Printf("Watching %s. Press Ctrl+C to stop.\n", cfg.GlobalRulesSourceDir)

			stop := make(chan struct{})
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				close(stop)
			}()

			return resyncer.Run(stop)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "project directory (overrides argument, defaults to current directory)")

	return cmd
}
