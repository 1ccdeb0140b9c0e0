package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// dotEnvFiles are read in priority order. godotenv never overwrites a set
// variable, so the process environment wins over both files.
var dotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the .env files found in dir into the environment and
// returns the ones that were applied. A file that fails to parse is skipped
// and reported in the error; the remaining files are still loaded.
func LoadDotEnv(dir string) ([]string, error) {
	var (
		loaded []string
		errs   []error
	)
	for _, name := range dotEnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", path, err))
			continue
		}
		loaded = append(loaded, path)
	}
	return loaded, errors.Join(errs...)
}
