// Package config loads the application configuration with viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// EnvPrefix prefixes environment overrides, e.g. SPOOLCUT_DEFAULTS_KERFWIDTH.
const EnvPrefix = "SPOOLCUT"

// Configuration holds all configuration for spoolcut.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Defaults   DefaultsConfig   `yaml:"defaults,omitempty"`
	Dimensions DimensionsConfig `yaml:"dimensions,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// DefaultsConfig seeds the settings of new jobs.
type DefaultsConfig struct {
	StockLength      float64 `yaml:"stockLength,omitempty"`
	KerfWidth        float64 `yaml:"kerfWidth,omitempty"`
	PressureClass    string  `yaml:"pressureClass,omitempty"`
	WeldGap          float64 `yaml:"weldGap,omitempty"`
	MinRemnantLength float64 `yaml:"minRemnantLength,omitempty"`
}

// DimensionsConfig points at an optional TOML dimension table. Empty means
// the built-in table.
type DimensionsConfig struct {
	TablePath string `yaml:"tablePath,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	DevMode bool   `yaml:"devMode,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	s := model.DefaultSettings()
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Defaults: DefaultsConfig{
			StockLength:      s.StockLength,
			KerfWidth:        s.KerfWidth,
			PressureClass:    string(s.PressureClass),
			WeldGap:          s.WeldGap,
			MinRemnantLength: s.MinRemnantLength,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("defaults.stockLength", d.Defaults.StockLength)
	v.SetDefault("defaults.kerfWidth", d.Defaults.KerfWidth)
	v.SetDefault("defaults.pressureClass", d.Defaults.PressureClass)
	v.SetDefault("defaults.weldGap", d.Defaults.WeldGap)
	v.SetDefault("defaults.minRemnantLength", d.Defaults.MinRemnantLength)
	v.SetDefault("dimensions.tablePath", d.Dimensions.TablePath)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.devMode", d.Server.DevMode)
}

// LoadConfiguration reads the file at configPath (type taken from the
// extension), applies SPOOLCUT_* environment overrides and fills in
// defaults. An empty path skips the file.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate rejects values no job could use.
func (c *Configuration) Validate() error {
	if _, err := model.ParsePressureClass(c.Defaults.PressureClass); err != nil {
		return fmt.Errorf("invalid defaults.pressureClass: %w", err)
	}
	if c.Defaults.StockLength <= 0 {
		return fmt.Errorf("defaults.stockLength must be positive, got %v", c.Defaults.StockLength)
	}
	if c.Defaults.KerfWidth < 0 {
		return fmt.Errorf("defaults.kerfWidth must not be negative, got %v", c.Defaults.KerfWidth)
	}
	return nil
}

// ApplyToSettings copies the configured defaults into job settings.
// An unparseable pressure class leaves the existing one in place.
func (c *Configuration) ApplyToSettings(s *model.CutSettings) {
	s.StockLength = c.Defaults.StockLength
	s.KerfWidth = c.Defaults.KerfWidth
	s.WeldGap = c.Defaults.WeldGap
	s.MinRemnantLength = c.Defaults.MinRemnantLength
	if pc, err := model.ParsePressureClass(c.Defaults.PressureClass); err == nil {
		s.PressureClass = pc
	}
}

// Settings returns job settings built from the configured defaults.
func (c *Configuration) Settings() model.CutSettings {
	s := model.DefaultSettings()
	c.ApplyToSettings(&s)
	return s
}
