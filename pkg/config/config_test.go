package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".ollama-agent.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
ollama:
  model: gemma3:1b
  host: http://192.168.1.100:11434
  timeout: 5m
log:
  level: debug
tasks:
  test: ["go", "test", "./..."]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Ollama.Model != "gemma3:1b" {
		t.Errorf("model = %q, want gemma3:1b", cfg.Ollama.Model)
	}
	if cfg.Ollama.Host != "http://192.168.1.100:11434" {
		t.Errorf("host = %q", cfg.Ollama.Host)
	}
	if got := cfg.Ollama.TimeoutDuration(); got != 5*time.Minute {
		t.Errorf("timeout = %v, want 5m", got)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Tasks["test"]) != 3 {
		t.Errorf("task override = %v", cfg.Tasks["test"])
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `log: {level: warn}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Ollama.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Ollama.Model, DefaultModel)
	}
	if cfg.Ollama.Host != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.Ollama.Host, DefaultHost)
	}
	if cfg.Cache.Dir == "" {
		t.Error("cache dir default not applied")
	}
	if cfg.Cache.TTLDuration() != time.Minute {
		t.Errorf("cache ttl = %v, want 1m", cfg.Cache.TTLDuration())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "ollama: [not a mapping")

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid level", Config{Log: LogConfig{Level: "warn"}}, false},
		{"bad level", Config{Log: LogConfig{Level: "loud"}}, true},
		{"bad host", Config{Ollama: OllamaConfig{Host: "not a url"}}, true},
		{"valid host", Config{Ollama: OllamaConfig{Host: "http://localhost:11434"}}, false},
		{"bad timeout", Config{Ollama: OllamaConfig{Timeout: "fast"}}, true},
		{"bad ttl", Config{Cache: CacheConfig{TTL: "soon"}}, true},
		{"empty task override", Config{Tasks: map[string][]string{"test": {}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, `ollama: {model: from-file}`)

	t.Setenv("OLLAMA_AGENT_CONFIG", path)
	t.Setenv("OLLAMA_MODEL", "from-env")
	t.Setenv("OLLAMA_HOST", "http://envhost:11434")
	t.Setenv("OLLAMA_AGENT_LOG_LEVEL", "error")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Ollama.Model != "from-env" {
		t.Errorf("model = %q, want from-env", cfg.Ollama.Model)
	}
	if cfg.Ollama.Host != "http://envhost:11434" {
		t.Errorf("host = %q, want http://envhost:11434", cfg.Ollama.Host)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want error", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_AfterExplicitLoad(t *testing.T) {
	path := writeConfig(t, `
ollama:
  model: from-file
  host: http://filehost:11434
`)

	t.Setenv("OLLAMA_MODEL", "from-env")
	t.Setenv("OLLAMA_HOST", "http://envhost:11434")
	t.Setenv("OLLAMA_AGENT_LOG_LEVEL", "error")

	// An explicitly chosen file still yields to the environment.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ApplyEnvOverrides(cfg)

	if cfg.Ollama.Model != "from-env" {
		t.Errorf("model = %q, want from-env", cfg.Ollama.Model)
	}
	if cfg.Ollama.Host != "http://envhost:11434" {
		t.Errorf("host = %q, want http://envhost:11434", cfg.Ollama.Host)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want error", cfg.Log.Level)
	}
}

func TestTimeoutDuration_Fallback(t *testing.T) {
	c := OllamaConfig{Timeout: ""}
	if got := c.TimeoutDuration(); got != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m", got)
	}
}
