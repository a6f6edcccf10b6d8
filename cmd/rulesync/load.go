package main

import (
	"fmt"
	"os"

	"rulesync/pkg/types"

	"github.com/spf13/cobra"
)

// NewLoadCmd creates the load command
func NewLoadCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "load [path]",
		Short: "Copy global rules into a project",
		Long:  `Copy the configured global rule files into {path}/.cursor/rules, overwriting files of the same name.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, err := resolveProjectPath(path, args)
			if err != nil {
				return err
			}

			res := newService().LoadGlobalRules(types.SyncRequest{Path: projectPath})
			printResult(res, fmt.Sprintf("Loaded global rules into %s", projectPath))
			if !res.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "project directory (overrides argument, defaults to current directory)")

	return cmd
}

// resolveProjectPath picks the project path from flag, argument, or the
// working directory, in that order
func resolveProjectPath(flagPath string, args []string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting current directory: %w", err)
	}
	return wd, nil
}

// printResult reports a sync result on stdout
func printResult(res *types.SyncResult, successMsg string) {
	if res.Success {
		fmt.Println(successMsg)
		return
	}
	fmt.Printf("Synchronization failed (%d error(s)):\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Printf("  [%s] %s\n", e.Type, e.Message)
	}
}
