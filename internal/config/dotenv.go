package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/subosito/gotenv"
)

// loadDotEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment. A missing file is not an error. Variables that already hold a
// non-empty value are left alone.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open dotenv: %w", err)
	}
	defer f.Close()

	vars, err := gotenv.StrictParse(f)
	if err != nil {
		return fmt.Errorf("parse dotenv %s: %w", path, err)
	}
	for k, v := range vars {
		if os.Getenv(k) != "" {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
