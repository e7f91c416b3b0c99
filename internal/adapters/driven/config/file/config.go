package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// envAPIKey overrides the embedding API key from the environment, so the
// secret never has to live in the config file.
const envAPIKey = "FILEHUB_OPENAI_API_KEY"

// Config is the application configuration, loaded from TOML.
type Config struct {
	// Server configures the HTTP API.
	Server ServerConfig `toml:"server"`

	// Storage configures the record store.
	Storage StorageConfig `toml:"storage"`

	// Embedding configures the embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string `toml:"addr"`

	// AllowedOrigins are CORS origins permitted to call the API.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StorageConfig configures the record store.
type StorageConfig struct {
	// DataDir is where the SQLite database lives.
	// Empty means ~/.filehub/data.
	DataDir string `toml:"data_dir"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	// APIKey authenticates against the provider. Usually supplied via the
	// FILEHUB_OPENAI_API_KEY environment variable rather than the file.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint. Empty means the default.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name. Empty means the default.
	Model string `toml:"model"`

	// Timeout bounds a single embedding request.
	Timeout time.Duration `toml:"timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from configDir/config.toml. A missing file yields
// the defaults; a malformed file is an error. If configDir is empty,
// defaults to ~/.filehub. Environment overrides apply last.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".filehub")
	}

	cfg := Default()

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes the configuration to configDir/config.toml with restricted
// permissions, creating the directory if needed.
func Save(configDir string, cfg *Config) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnv layers environment overrides on top of the file values.
func applyEnv(cfg *Config) {
	if key := os.Getenv(envAPIKey); key != "" {
		cfg.Embedding.APIKey = key
	}
}
