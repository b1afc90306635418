package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Import  ImportConfig  `json:"import"`
	Display DisplayConfig `json:"display"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MaxHR           float64        `json:"max_hr"`
	RestingHR       float64        `json:"resting_hr"`
	Age             int            `json:"age"`
	RecentInjury    bool           `json:"recent_injury"`
	RunningPriority bool           `json:"running_priority"`
	PersonalBests   []PersonalBest `json:"personal_bests"`
}

// PersonalBest is a race or time-trial result used for fitness estimates
type PersonalBest struct {
	DistanceMeters  float64   `json:"distance_meters"`
	DurationSeconds float64   `json:"duration_seconds"`
	AchievedAt      time.Time `json:"achieved_at"`
}

// ImportConfig holds settings for the activity importer
type ImportConfig struct {
	Path string `json:"path"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			MaxHR:           185,
			RestingHR:       50,
			RunningPriority: true,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Load reads the configuration from ~/.trainguard/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.trainguard/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Import.Path = "~/activities.json"
	example.Athlete.Age = 35
	example.Athlete.PersonalBests = []PersonalBest{
		{
			DistanceMeters:  5000,
			DurationSeconds: 1500,
			AchievedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Athlete.MaxHR > 0 && c.Athlete.RestingHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.Age < 0 {
		return fmt.Errorf("athlete.age must not be negative, got %d", c.Athlete.Age)
	}

	for i, pb := range c.Athlete.PersonalBests {
		if pb.DistanceMeters <= 0 {
			return fmt.Errorf("athlete.personal_bests[%d].distance_meters must be positive", i)
		}
		if pb.DurationSeconds <= 0 {
			return fmt.Errorf("athlete.personal_bests[%d].duration_seconds must be positive", i)
		}
	}

	// Validate display units
	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	return nil
}

// ImportPath returns the configured import path with a leading ~ expanded
func (c *Config) ImportPath() (string, error) {
	p := c.Import.Path
	if p == "" {
		return "", errors.New("import.path is not set")
	}
	if len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		p = filepath.Join(home, p[2:])
	}
	return p, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainguard", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainguard"), nil
}
