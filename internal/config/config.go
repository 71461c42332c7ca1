package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// PropertyNames names the managed elements. A nil BuildYear means the
// default name; an empty one disables the year property.
type PropertyNames struct {
	BuildNumber string  `yaml:"build_number,omitempty"`
	BuildDate   string  `yaml:"build_date,omitempty"`
	BuildYear   *string `yaml:"build_year,omitempty"`
}

type ProjectConfig struct {
	Descriptor  string            `yaml:"descriptor,omitempty"`
	Path        string            `yaml:"path,omitempty"`
	Updater     string            `yaml:"updater,omitempty"`
	DatePattern string            `yaml:"date_pattern,omitempty"`
	Properties  PropertyNames     `yaml:"properties,omitempty"`
	Extra       map[string]string `yaml:"extra,omitempty"`
}

const ConfigFileName = "buildmeta.yaml"

// Default returns the configuration used when no file exists.
func Default() *ProjectConfig {
	year := buildmeta.DefaultBuildYearProperty
	return &ProjectConfig{
		Descriptor:  buildmeta.DefaultDescriptor,
		Path:        buildmeta.DefaultElementPath,
		Updater:     string(buildmeta.UpdaterStreaming),
		DatePattern: buildmeta.DefaultDatePattern,
		Properties: PropertyNames{
			BuildNumber: buildmeta.DefaultBuildNumberProperty,
			BuildDate:   buildmeta.DefaultBuildDateProperty,
			BuildYear:   &year,
		},
	}
}

// WithDefaults returns a copy of c with every unset field taken from Default.
func (c *ProjectConfig) WithDefaults() *ProjectConfig {
	out := Default()
	if c == nil {
		return out
	}
	if c.Descriptor != "" {
		out.Descriptor = c.Descriptor
	}
	if c.Path != "" {
		out.Path = c.Path
	}
	if c.Updater != "" {
		out.Updater = c.Updater
	}
	if c.DatePattern != "" {
		out.DatePattern = c.DatePattern
	}
	if c.Properties.BuildNumber != "" {
		out.Properties.BuildNumber = c.Properties.BuildNumber
	}
	if c.Properties.BuildDate != "" {
		out.Properties.BuildDate = c.Properties.BuildDate
	}
	if c.Properties.BuildYear != nil {
		year := *c.Properties.BuildYear
		out.Properties.BuildYear = &year
	}
	if len(c.Extra) > 0 {
		out.Extra = make(map[string]string, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// BuildYearProperty returns the year property name, empty when disabled.
func (c *ProjectConfig) BuildYearProperty() string {
	if c.Properties.BuildYear == nil {
		return buildmeta.DefaultBuildYearProperty
	}
	return *c.Properties.BuildYear
}

// Load reads buildmeta.yaml from the project directory.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, &buildmeta.DocumentError{
			FilePath: configPath,
			Kind:     buildmeta.ErrInvalidConfig,
			Message:  "cannot parse configuration",
			Hint:     "Run 'buildmeta init --force' to write a fresh configuration file.",
			Err:      err,
		}
	}
	return &cfg, nil
}

// Marshal renders cfg as the content of buildmeta.yaml.
func Marshal(cfg *ProjectConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# buildmeta configuration\n")
	buf.WriteString("# Flags and BUILDMETA_* environment variables override these values.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
