// Package main provides the ollama-agent CLI application.
package main

import (
	"fmt"

	"github.com/ollama-acp/ollama-agent/pkg/output"
	"github.com/spf13/cobra"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the Ollama server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newOllamaClient(cfg)
		models, err := client.List(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: could not connect to Ollama at %s\n", client.Host())
			fmt.Fprintln(cmd.ErrOrStderr(), "Make sure Ollama is running: ollama serve")
			return err
		}

		if len(models) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No models found. Please pull a model first:")
			fmt.Fprintf(cmd.OutOrStdout(), "  ollama pull %s\n", cfg.Ollama.Model)
			return fmt.Errorf("no models available on %s", client.Host())
		}

		output.WriteModelTable(cmd.OutOrStdout(), client.Host(), models)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
