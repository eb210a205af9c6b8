// Package persist writes snapshot types to disk as YAML and reads them back.
// Recorders expose Snapshot/Restore pairs; this package owns only the codec
// and the overwrite guard.
package persist

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrExists = errors.New("file already exists")

// Save marshals v as YAML to path. Unless overwrite is set, an existing file
// at path fails the save with ErrExists.
func Save(path string, v any, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load reads the YAML file at path into v.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	return nil
}
