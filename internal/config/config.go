package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kryssord/kryss/pkg/kryss/render"
)

const (
	EnvDictionary = "KRYSS_DICTIONARY"
	EnvColors     = "KRYSS_COLORS"
	EnvDebug      = "KRYSS_DEBUG"

	DefaultDictionary = "dict.json"
)

// Config holds the defaults of the command line flags.
type Config struct {
	Dictionary string
	Colors     bool
	Debug      bool
}

// Load reads the given .env files, or ".env" if none are given, and builds a
// Config from the environment. Missing files are skipped and variables that
// are already set take precedence over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	cfg := Config{
		Dictionary: DefaultDictionary,
		Colors:     true,
	}
	if v, ok := os.LookupEnv(EnvDictionary); ok && v != "" {
		cfg.Dictionary = v
	}

	var err error
	if cfg.Colors, err = lookupBool(EnvColors, cfg.Colors); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = lookupBool(EnvDebug, cfg.Debug); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RenderMode returns the output mode selected by Colors.
func (c Config) RenderMode() render.Mode {
	if c.Colors {
		return render.Color
	}
	return render.Mono
}

func lookupBool(name string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", name, v)
	}
	return b, nil
}
