package main

import (
	"fmt"
	"os"

	"rulesync/pkg/types"

	"github.com/spf13/cobra"
)

// NewSaveCmd creates the save command
func NewSaveCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Copy a project's rules back into the global directory",
		Long:  `Copy rule files from {path}/.cursor/rules back into the configured global directory, overwriting files of the same name.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, err := resolveProjectPath(path, args)
			if err != nil {
				return err
			}

			res := newService().SaveGlobalRules(types.SyncRequest{Path: projectPath})
			printResult(res, fmt.Sprintf("Saved global rules from %s", projectPath))
			if !res.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "project directory (overrides argument, defaults to current directory)")

	return cmd
}
