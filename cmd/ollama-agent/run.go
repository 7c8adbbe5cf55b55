// Package main provides the ollama-agent CLI application.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ollama-acp/ollama-agent/pkg/acp"
	"github.com/ollama-acp/ollama-agent/pkg/agent"
	"github.com/ollama-acp/ollama-agent/pkg/observability"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve the agent on stdio",
	Long: `Serve the Agent Client Protocol agent on stdin/stdout.

An ACP client (an editor or another host application) starts this command
and drives it over stdio. Prompts are forwarded to the configured Ollama
model and the responses stream back as session updates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := newOllamaClient(cfg)
		ag := agent.New(client, cfg.Ollama.Model, logger)

		if err := ag.VerifyConnection(ctx); err != nil {
			logger.Error("failed to connect to Ollama",
				observability.String("host", client.Host()),
				observability.Err(err))
			return err
		}

		logger.Info("agent ready",
			observability.String("model", cfg.Ollama.Model),
			observability.String("host", client.Host()))

		conn := acp.NewConn(ag, os.Stdin, os.Stdout, logger)
		return conn.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
