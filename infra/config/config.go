package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

var (
	// Path is the directory the config files are loaded from.
	Path = "infra/config"

	NotFoundErr = errors.New("config not found")
	InvalidErr  = errors.New("invalid config")
)

// Load loads the config for the given key into v.
// Values missing from the file keep whatever v already holds.
func Load(key string, v interface{}) error {
	p := filepath.Join(Path, fmt.Sprintf("%s.json", key))
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not load config for %s: %w", key, NotFoundErr)
		}
		return fmt.Errorf("could not load config for %s: %v: %w", key, err, InvalidErr)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %v: %w", key, err, InvalidErr)
	}

	log.Info().Str("config", key).Str("path", p).Msg("loaded config")
	return nil
}
