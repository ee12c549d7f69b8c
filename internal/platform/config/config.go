package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "studychef/internal/platform/errors"
)

// Env holds the settings read from STUDYCHEF_* environment variables.
type Env struct {
	Home         string        `env:"STUDYCHEF_HOME"`
	FocusMinutes int           `env:"STUDYCHEF_FOCUS_MINUTES" envDefault:"25"`
	BreakMinutes int           `env:"STUDYCHEF_BREAK_MINUTES" envDefault:"5"`
	Scheme       string        `env:"STUDYCHEF_SCHEME" envDefault:"chained"`
	Seed         int64         `env:"STUDYCHEF_SEED" envDefault:"0"`
	Timezone     string        `env:"STUDYCHEF_TZ"`
	TickInterval time.Duration `env:"STUDYCHEF_TICK" envDefault:"250ms"`
	Autosave     time.Duration `env:"STUDYCHEF_AUTOSAVE" envDefault:"5s"`
	Journal      bool          `env:"STUDYCHEF_JOURNAL" envDefault:"true"`
	CatalogPath  string        `env:"STUDYCHEF_CATALOG"`
	LogLevel     string        `env:"STUDYCHEF_LOG_LEVEL" envDefault:"info"`
	LogJSON      bool          `env:"STUDYCHEF_LOG_JSON" envDefault:"false"`
}

type Config struct {
	HomePath     string
	SnapshotPath string
	DBPath       string
	JournalPath  string
	HooksPath    string
	LogPath      string
	CatalogPath  string

	FocusMinutes int
	BreakMinutes int
	Scheme       string
	Seed         int64
	Location     *time.Location
	TickInterval time.Duration
	Autosave     time.Duration
	Journal      bool
	LogLevel     string
	LogJSON      bool
}

// Load reads the environment and derives every path from home. An explicit
// home wins over STUDYCHEF_HOME.
func Load(home string) (Config, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Config{}, err
	}
	if home == "" {
		home = e.Home
	}
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		home = filepath.Join(userHome, ".studychef")
	}
	return New(home, e)
}

func New(home string, e Env) (Config, error) {
	if home == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	if e.FocusMinutes <= 0 {
		return Config{}, fmt.Errorf("%w: focus minutes must be positive, got %d", apperrors.ErrInvalidConfiguration, e.FocusMinutes)
	}
	if e.BreakMinutes <= 0 {
		return Config{}, fmt.Errorf("%w: break minutes must be positive, got %d", apperrors.ErrInvalidConfiguration, e.BreakMinutes)
	}
	scheme := strings.ToLower(strings.TrimSpace(e.Scheme))
	if scheme != "chained" && scheme != "freeform" {
		return Config{}, fmt.Errorf("%w: unknown scheme %q", apperrors.ErrInvalidConfiguration, e.Scheme)
	}
	if e.TickInterval <= 0 {
		return Config{}, fmt.Errorf("%w: tick interval must be positive", apperrors.ErrInvalidConfiguration)
	}
	loc := time.Local
	if e.Timezone != "" {
		l, err := time.LoadLocation(e.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timezone %q: %v", apperrors.ErrInvalidConfiguration, e.Timezone, err)
		}
		loc = l
	}
	return Config{
		HomePath:     home,
		SnapshotPath: filepath.Join(home, "save.json"),
		DBPath:       filepath.Join(home, "studychef.db"),
		JournalPath:  filepath.Join(home, "journal"),
		HooksPath:    filepath.Join(home, "hooks"),
		LogPath:      filepath.Join(home, "studychef.log"),
		CatalogPath:  e.CatalogPath,
		FocusMinutes: e.FocusMinutes,
		BreakMinutes: e.BreakMinutes,
		Scheme:       scheme,
		Seed:         e.Seed,
		Location:     loc,
		TickInterval: e.TickInterval,
		Autosave:     e.Autosave,
		Journal:      e.Journal,
		LogLevel:     e.LogLevel,
		LogJSON:      e.LogJSON,
	}, nil
}
