// Package config provides configuration loading for the agent pipeline
// service.
package config

import (
	"time"

	"github.com/pkg/errors"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	OpenAI   OpenAIConfig   `koanf:"openai"`
	Serper   SerperConfig   `koanf:"serper"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig configures the HTTP front door.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RunTimeout bounds a single pipeline run end to end.
	RunTimeout time.Duration `koanf:"run_timeout"`
}

// OpenAIConfig configures the completion collaborator.
type OpenAIConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// SerperConfig configures the search collaborator.
type SerperConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// PipelineConfig configures the agent chain.
type PipelineConfig struct {
	// IncludeWriter inserts the Writer between the Researcher and the
	// platform agents. The caller decides the sequence; there is no
	// runtime branch inside the pipeline.
	IncludeWriter bool `koanf:"include_writer"`
	// IncludeHistory returns the full per-step history in responses,
	// and on failures the partial history produced before the failure.
	IncludeHistory bool `koanf:"include_history"`
	// DrawFile, when set, renders the chain graph with per-step timings
	// to this DOT file after each run.
	DrawFile string `koanf:"draw_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Default returns the built-in defaults, before file and environment
// overrides.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
			RunTimeout:      4 * time.Minute,
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		Serper: SerperConfig{
			BaseURL: "https://google.serper.dev/search",
			Timeout: 30 * time.Second,
		},
		Pipeline: PipelineConfig{
			IncludeWriter:  false,
			IncludeHistory: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports startup-fatal problems. Both collaborator credentials
// are required; their absence is a startup error, never a per-request one.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return errors.New("openai api key must be set (OPENAI_API_KEY)")
	}

	if c.Serper.APIKey == "" {
		return errors.New("serper api key must be set (SERPER_API_KEY)")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("invalid server port %d", c.Server.Port)
	}

	return nil
}
