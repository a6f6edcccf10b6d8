package main

import (
	"rulesync/internal/log"
	"rulesync/internal/service"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rulesync",
		Short:   "Synchronize global Cursor rule files across projects",
		Long: `Rulesync keeps a shared library of global rule files (files named
with the g- prefix) in sync between one configured global directory and
the .cursor/rules directory of any local project.

"load" copies the global rules into a project; "save" copies a project's
rules back into the global directory.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is rulesync.yaml next to the executable)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewLoadCmd())
	rootCmd.AddCommand(NewSaveCmd())
	rootCmd.AddCommand(NewSetupCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// newService builds the service honoring the --config flag
func newService() *service.Service {
	if cfgFile != "" {
		return service.NewWithConfigPath(cfgFile)
	}
	return service.New()
}
