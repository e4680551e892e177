package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DataDir     string
	DBPath      string
	BooksAPIKey string
}

type environment struct {
	DataDir     string `env:"QURTAS_DATA"`
	BooksAPIKey string `env:"QURTAS_BOOKS_API_KEY"`
}

// New resolves the data directory from the explicit flag value, the
// QURTAS_DATA environment variable, or ~/.qurtas, in that order.
func New(dataDir string) (Config, error) {
	e := environment{}
	if err := env.Parse(&e); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if dataDir == "" {
		dataDir = e.DataDir
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".qurtas")
	}
	return Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "index.db"),
		BooksAPIKey: e.BooksAPIKey,
	}, nil
}
