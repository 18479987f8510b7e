package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by LoadSettings
const EnvPrefix = "AOC"

// Settings are the runner's tunables. Each field is read from AOC_<name>.
type Settings struct {
	InputDir  string `envconfig:"INPUT_DIR" default:"inputs"`
	RunsDir   string `envconfig:"RUNS_DIR" default:"runs"`
	Host      string `envconfig:"HOST" default:"localhost"`
	Port      int    `envconfig:"PORT" default:"8080"`
	CacheSize int64  `envconfig:"CACHE_SIZE" default:"10000"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`

	NgrokEnabled   bool   `envconfig:"NGROK_ENABLED" default:"false"`
	NgrokAuthToken string `envconfig:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `envconfig:"NGROK_DOMAIN"`
}

// Addr returns host:port
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadSettings loads the given .env files (".env" when none are named),
// ignoring missing ones, and then processes the environment
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return &s, nil
}
