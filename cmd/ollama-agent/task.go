// Package main provides the ollama-agent CLI application.
package main

import (
	"os"
	"time"

	"github.com/ollama-acp/ollama-agent/pkg/output"
	"github.com/ollama-acp/ollama-agent/pkg/task"
	"github.com/spf13/cobra"
)

// taskFlags holds the flags for the task command
type taskFlags struct {
	dryRun  bool
	list    bool
	timeout time.Duration
}

var taskOpts taskFlags

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task [target]",
	Short: "Run a build automation target",
	Long: `Run one of the project's build automation targets.

Each target dispatches to its external toolchain command and the command's
exit status becomes this process's exit status. Command bindings can be
overridden per project in the tasks section of the config file.

Targets: install, install-dev, test, lint, format, clean, build, upload,
dev (alias for install-dev) and check (lint then test).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry := task.Builtin(cfg.Tasks)

		if taskOpts.list || len(args) == 0 {
			output.WriteTargetTable(cmd.OutOrStdout(), registry.List())
			return nil
		}

		workdir, err := os.Getwd()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		defer func() { _ = logger.Sync() }()

		runner := task.NewRunner(registry,
			task.WithWorkDir(workdir),
			task.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			task.WithDryRun(taskOpts.dryRun),
			task.WithStepTimeout(taskOpts.timeout),
			task.WithVerbose(rootOpts.debug),
			task.WithLogger(logger),
		)

		return runner.Run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)

	taskCmd.Flags().BoolVar(&taskOpts.dryRun, "dry-run", false, "Print commands without running them")
	taskCmd.Flags().BoolVarP(&taskOpts.list, "list", "l", false, "List available targets")
	taskCmd.Flags().DurationVar(&taskOpts.timeout, "timeout", 0, "Per-step timeout (0 means none)")
}
