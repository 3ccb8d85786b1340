// Package config loads the Granthika configuration file.
//
// Configuration lives at ~/.granthika/config.toml. Every field has a
// working default so a missing file is not an error; a first run needs
// no setup beyond a reachable Ollama.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Chat      ChatConfig      `toml:"chat"`
	OCR       OCRConfig       `toml:"ocr"`
	PDF       PDFConfig       `toml:"pdf"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Port is the listen port for granthika serve.
	Port int `toml:"port"`

	// JWTSecret signs session cookies. Generated and persisted on
	// first run when empty.
	JWTSecret string `toml:"jwt_secret"`

	// SessionHours is how long a login session stays valid.
	SessionHours int `toml:"session_hours"`
}

// DataConfig configures on-disk storage.
type DataConfig struct {
	// Dir holds the SQLite database and the vector snapshot.
	Dir string `toml:"dir"`
}

// EmbeddingConfig configures the embedding model.
type EmbeddingConfig struct {
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`

	// RequestsPerSecond throttles bulk embedding. Zero disables.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ChatConfig configures the chat model.
type ChatConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// OCRConfig configures text extraction from images.
type OCRConfig struct {
	Binary    string `toml:"binary"`
	Languages string `toml:"languages"`
}

// PDFConfig configures text extraction from PDFs.
type PDFConfig struct {
	Binary string `toml:"binary"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         3000,
			SessionHours: 72,
		},
		Embedding: EmbeddingConfig{
			BaseURL:    "http://localhost:11434",
			Model:      "all-minilm",
			Dimensions: 384,
		},
		Chat: ChatConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3",
		},
		OCR: OCRConfig{
			Binary:    "tesseract",
			Languages: "eng+hin",
		},
		PDF: PDFConfig{
			Binary: "pdftotext",
		},
	}
}

// DefaultPath returns ~/.granthika/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".granthika", "config.toml"), nil
}

// Load reads the configuration at path, layering it over the defaults.
// A missing file returns the defaults unchanged. An empty path uses
// DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory as
// needed. An empty path uses DefaultPath.
func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SnapshotPath returns the vector snapshot location under the data dir.
func (c Config) SnapshotPath() (string, error) {
	dir := c.Data.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".granthika", "data")
	}
	return filepath.Join(dir, "vectors.json"), nil
}
