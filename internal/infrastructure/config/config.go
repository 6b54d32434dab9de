// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tesso57/myshelf/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// envOverrides are applied on top of the file. Empty values leave the file
// setting untouched.
type envOverrides struct {
	StoreDriver  string        `env:"MYSHELF_STORE_DRIVER"`
	StorePath    string        `env:"MYSHELF_STORE_PATH"`
	StoreDSN     string        `env:"MYSHELF_STORE_DSN"`
	PollInterval time.Duration `env:"MYSHELF_STORE_POLL_INTERVAL"`
	MemberID     string        `env:"MYSHELF_MEMBER_ID"`
	MemberName   string        `env:"MYSHELF_MEMBER_NAME"`
	Token        string        `env:"MYSHELF_SESSION_TOKEN"`
	Secret       string        `env:"MYSHELF_SESSION_SECRET"`
	LogFile      string        `env:"MYSHELF_LOG_FILE"`
}

// LoadDotEnv reads .env.local and .env from the working directory when
// present. Variables already in the environment win, then .env.local, then .env.
func LoadDotEnv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, ".config", "myshelf", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{Settings: cfg, configPath: configPath}

	_, statErr := os.Stat(configPath)
	fileExists := statErr == nil

	var options []kong.Option
	if fileExists {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return nil, err
	}

	store.Settings = cfg
	store.Settings.Store.Driver = store.Settings.Store.DriverName()
	store.Settings.Store.Path = strings.TrimSpace(store.Settings.Store.Path)
	if store.Settings.Store.Path == "" {
		store.Settings.Store.Path = filepath.Join(defaultDataHome(), "myshelf", "shelf.db")
	}

	// Persist file defaults only; environment overrides stay out of the file.
	if !fileExists {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	if err := applyEnv(&store.Settings); err != nil {
		return nil, err
	}
	if err := validate(store.Settings); err != nil {
		return nil, err
	}
	return store, nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.configPath
}

func applyEnv(cfg *settings.Settings) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&cfg.Store.Driver, strings.ToLower(o.StoreDriver))
	set(&cfg.Store.Path, o.StorePath)
	set(&cfg.Store.DSN, o.StoreDSN)
	set(&cfg.Session.MemberID, o.MemberID)
	set(&cfg.Session.MemberName, o.MemberName)
	set(&cfg.Session.Token, o.Token)
	set(&cfg.Session.Secret, o.Secret)
	set(&cfg.LogFile, o.LogFile)
	if o.PollInterval > 0 {
		cfg.Store.PollInterval = o.PollInterval
	}
	return nil
}

func validate(cfg settings.Settings) error {
	switch cfg.Store.DriverName() {
	case settings.DriverSQLite:
	case settings.DriverPostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if cfg.Store.PollInterval <= 0 {
		return fmt.Errorf("store.poll_interval must be positive")
	}
	return nil
}

func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}

			// Nested dot-notation, e.g. store.poll_interval.
			parts := strings.Split(name, ".")
			if len(parts) > 1 {
				curr := values
				for i, part := range parts {
					if i == len(parts)-1 {
						if v, ok := curr[part]; ok {
							return v, nil
						}
					} else {
						if nextMap, ok := curr[part].(map[string]any); ok {
							curr = nextMap
						} else {
							break
						}
					}
				}
			}
		}
		return nil, nil
	}
	return f, nil
}

// SetMember records the current member in the session section and saves.
func (s *Store) SetMember(id, name string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("member id is empty")
	}
	s.Settings.Session.MemberID = id
	s.Settings.Session.MemberName = strings.TrimSpace(name)
	return s.Save()
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
