package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"commutectl/pkg/commute"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the configuration file location
	EnvConfigPath = "COMMUTECTL_CONFIG"
	// EnvBaseURL overrides the transit API base URL
	EnvBaseURL = "COMMUTECTL_BASE_URL"

	fileName = ".commutectl.yaml"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	MorningCutoff int           `yaml:"morning_cutoff" validate:"gte=0,lt=24"`
	EveningCutoff int           `yaml:"evening_cutoff" validate:"gtfield=MorningCutoff,lte=24"`
	Timezone      string        `yaml:"timezone" validate:"required"`
	Outbound      LegConfig     `yaml:"outbound"`
	Inbound       LegConfig     `yaml:"inbound"`
	Transit       TransitConfig `yaml:"transit"`
	AccentColor   string        `yaml:"accent_color,omitempty"`
	DisplayLimit  int           `yaml:"display_limit" validate:"gte=1,lte=4"`
}

// LegConfig describes one direction of the commute
type LegConfig struct {
	Origin      string     `yaml:"origin" validate:"required"`
	Destination string     `yaml:"destination" validate:"required"`
	StationCode string     `yaml:"station_code" validate:"required"`
	Filters     []string   `yaml:"filters" validate:"min=1,dive,required"`
	Icon        string     `yaml:"icon,omitempty"`
	Mock        MockConfig `yaml:"mock"`
}

// MockConfig shapes the fallback schedule for a direction
type MockConfig struct {
	PeakStartHour   int    `yaml:"peak_start_hour" validate:"gte=0,lte=24"`
	PeakEndHour     int    `yaml:"peak_end_hour" validate:"gtefield=PeakStartHour,lte=24"`
	FirstMinute     int    `yaml:"first_minute" validate:"gte=0,lt=15"`
	BaseTrainNumber int    `yaml:"base_train_number" validate:"gt=0"`
	TrainPrefix     string `yaml:"train_prefix"`
	Destination     string `yaml:"destination" validate:"required"`
	Kind            string `yaml:"kind"`
}

// TransitConfig tunes the ViaggiaTreno client
type TransitConfig struct {
	BaseURL        string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	TimeFormat     string `yaml:"time_format,omitempty" validate:"omitempty,oneof=epoch date"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	Attempts       int    `yaml:"attempts,omitempty" validate:"gte=0,lte=5"`
}

// Default returns the Roma Tuscolana / Muratella FL1 commute
func Default() *AppConfig {
	return &AppConfig{
		MorningCutoff: 14,
		EveningCutoff: 22,
		Timezone:      "Europe/Rome",
		DisplayLimit:  3,
		Outbound: LegConfig{
			Origin:      "Roma Tuscolana",
			Destination: "Muratella",
			StationCode: "S08408",
			Icon:        "✈️",
			Filters: []string{
				"MURATELLA",
				"MAGLIANA",
				"VILLA BONELLI",
				"TRASTEVERE",
				"OSTIENSE",
				"PONTE GALERIA",
				"FIERA DI ROMA",
				"PARCO LEONARDO",
				"FIUMICINO AEROPORTO",
			},
			Mock: MockConfig{
				PeakStartHour:   7,
				PeakEndHour:     10,
				FirstMinute:     7,
				BaseTrainNumber: 3270,
				TrainPrefix:     "FL1",
				Destination:     "FIUMICINO AEROPORTO",
				Kind:            "PG",
			},
		},
		// Evening departures are read from Fiumicino, not Muratella
		Inbound: LegConfig{
			Origin:      "Fiumicino Airport",
			Destination: "Roma Tuscolana",
			StationCode: "S08000",
			Icon:        "🏠",
			Filters: []string{
				"ORTE",
				"FARA SABINA",
				"ROMA TERMINI",
				"ROMA TIBURTINA",
				"ROMA OSTIENSE",
			},
			Mock: MockConfig{
				PeakStartHour:   17,
				PeakEndHour:     20,
				FirstMinute:     3,
				BaseTrainNumber: 3271,
				TrainPrefix:     "FL1",
				Destination:     "ORTE",
				Kind:            "PG",
			},
		},
		Transit: TransitConfig{
			TimeFormat:     "epoch",
			TimeoutSeconds: 10,
			Attempts:       1,
		},
	}
}

// Path returns the config location, honouring COMMUTECTL_CONFIG
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, fileName), nil
}

// LoadEnv reads KEY=VALUE pairs from the given .env files (default ./.env)
// into the process environment. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the default path.
// Returns the defaults if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path
func LoadFrom(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if u := os.Getenv(EnvBaseURL); u != "" {
		cfg.Transit.BaseURL = u
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the whole configuration
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes the configuration to the default path
func Save(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration as YAML to path
func SaveTo(cfg *AppConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Settings converts the file model into the immutable core settings
func (c *AppConfig) Settings() (commute.Settings, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return commute.Settings{}, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	s := commute.Settings{
		MorningCutoff: c.MorningCutoff,
		EveningCutoff: c.EveningCutoff,
		Location:      loc,
		Outbound:      c.Outbound.settings(),
		Inbound:       c.Inbound.settings(),
	}
	if err := s.Validate(); err != nil {
		return commute.Settings{}, err
	}
	return s, nil
}

func (l LegConfig) settings() commute.LegSettings {
	filters := make([]string, len(l.Filters))
	copy(filters, l.Filters)

	return commute.LegSettings{
		Origin:      l.Origin,
		Destination: l.Destination,
		StationCode: l.StationCode,
		Filters:     filters,
		Icon:        l.Icon,
		Mock: commute.MockSettings{
			PeakStartHour:   l.Mock.PeakStartHour,
			PeakEndHour:     l.Mock.PeakEndHour,
			FirstMinute:     l.Mock.FirstMinute,
			BaseTrainNumber: l.Mock.BaseTrainNumber,
			TrainPrefix:     l.Mock.TrainPrefix,
			Destination:     l.Mock.Destination,
			Kind:            l.Mock.Kind,
		},
	}
}
