package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bogleworks/boglesim/simulate"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Advisor    AdvisorConfig    `json:"advisor" yaml:"advisor"`
}

// ServerConfig contains the HTTP listener parameters.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// StoreConfig contains persistence parameters.
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// SimulationConfig contains Monte Carlo defaults applied when a request
// does not specify its own.
type SimulationConfig struct {
	Trials      int       `json:"trials" yaml:"trials"`
	Workers     int       `json:"workers,omitempty" yaml:"workers,omitempty"`
	Percentiles []float64 `json:"percentiles,omitempty" yaml:"percentiles,omitempty"`
	Model       string    `json:"model,omitempty" yaml:"model,omitempty"`
}

// AdvisorConfig contains the OpenAI assistant parameters. The key is
// read from the named environment variable, never from the file itself.
type AdvisorConfig struct {
	APIKeyEnv string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
}

// APIKey resolves the advisor key from the environment. Empty means the
// assistant is disabled.
func (a AdvisorConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// Engine builds a simulation engine from the configured defaults.
func (s SimulationConfig) Engine() (*simulate.Engine, error) {
	model, err := simulate.ModelByName(s.Model)
	if err != nil {
		return nil, err
	}
	return &simulate.Engine{
		Model:       model,
		Workers:     s.Workers,
		Percentiles: s.Percentiles,
	}, nil
}

// LoadFromFile loads configuration from a file (YAML is tried first,
// then JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("simulation.trials must be positive")
	}
	if c.Simulation.Trials > simulate.DefaultMaxTrials {
		return fmt.Errorf("simulation.trials must not exceed %d", simulate.DefaultMaxTrials)
	}
	for _, p := range c.Simulation.Percentiles {
		if p < 0 || p > 100 {
			return fmt.Errorf("simulation.percentiles must be between 0 and 100, got %v", p)
		}
	}
	if _, err := simulate.ModelByName(c.Simulation.Model); err != nil {
		return fmt.Errorf("simulation.model: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Store: StoreConfig{
			DBPath: "./boglesim.db",
		},
		Simulation: SimulationConfig{
			Trials:      5000,
			Percentiles: []float64{5, 25, 50, 75, 95},
			Model:       "normal",
		},
		Advisor: AdvisorConfig{
			APIKeyEnv: "OPENAI_API_KEY",
			Model:     "gpt-4o",
		},
	}
}
