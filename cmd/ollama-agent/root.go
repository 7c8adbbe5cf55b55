// Package main provides the ollama-agent CLI application.
package main

import (
	"github.com/ollama-acp/ollama-agent/pkg/cache"
	"github.com/ollama-acp/ollama-agent/pkg/config"
	"github.com/ollama-acp/ollama-agent/pkg/observability"
	"github.com/ollama-acp/ollama-agent/pkg/ollama"
	"github.com/ollama-acp/ollama-agent/pkg/version"
	"github.com/spf13/cobra"
)

// rootFlags holds the global flags.
type rootFlags struct {
	model      string
	host       string
	configPath string
	debug      bool
}

var rootOpts rootFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ollama-agent",
	Short: "Ollama Agent",
	Long: `Ollama Agent - Agent Client Protocol adapter for Ollama.

The agent speaks the Agent Client Protocol on stdio and forwards prompts
to a local or remote Ollama server with streamed responses. The task
subcommand drives the project's build automation targets.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.model, "model", "m", "", "Ollama model to use (default: llama3.2 or OLLAMA_MODEL)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.host, "host", "", "Ollama server URL (default: http://localhost:11434 or OLLAMA_HOST)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.debug, "debug", "d", false, "Enable debug logging")
}

// loadConfig loads the configuration and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if rootOpts.configPath != "" {
		cfg, err = config.Load(rootOpts.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	// Env overrides apply no matter how the file was located; flags still
	// take precedence below.
	config.ApplyEnvOverrides(cfg)

	if rootOpts.model != "" {
		cfg.Ollama.Model = rootOpts.model
	}
	if rootOpts.host != "" {
		cfg.Ollama.Host = rootOpts.host
	}
	if rootOpts.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the logger for the loaded config.
func newLogger(cfg *config.Config) observability.Logger {
	return observability.NewLogger(cfg.Log.Level)
}

// newOllamaClient builds the Ollama client with the model-list cache.
func newOllamaClient(cfg *config.Config) *ollama.Client {
	store := cache.NewTiered(
		cache.NewMemoryCache(),
		cache.NewDiskCache(cfg.Cache.Dir),
	)
	return ollama.NewClient(cfg.Ollama.Host,
		ollama.WithTimeout(cfg.Ollama.TimeoutDuration()),
		ollama.WithListCache(store, cfg.Cache.TTLDuration()),
	)
}
