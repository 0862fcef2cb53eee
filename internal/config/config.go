// Package config loads the optional studyplan configuration file.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/settings"
	"github.com/abhisek/studyplan/internal/store"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "schema://studyplan/config.schema.json"

// Config holds the studyplan configuration.
type Config struct {
	// Database is the SQLite file path. Empty means the default location.
	Database string         `yaml:"database"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// DefaultsConfig overrides the values seeded into an empty store. Anything
// left out falls back to the built-in defaults.
type DefaultsConfig struct {
	Parameters    map[string]int  `yaml:"parameters"`
	RevisionTable []RevisionEntry `yaml:"revision_table"`
	Availability  map[string]int  `yaml:"availability"`
}

// RevisionEntry sets the session count of one priority index.
type RevisionEntry struct {
	Priority int `yaml:"priority"`
	Sessions int `yaml:"sessions"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Parameters:   map[string]int{},
			Availability: map[string]int{},
		},
	}
}

// ResolvePath returns the config file path using the flag value (highest
// priority), then STUDYPLAN_CONFIG, then the XDG config directory.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if p := os.Getenv("STUDYPLAN_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "studyplan", "config.yaml"), nil
}

// Load reads the config at path. If the file doesn't exist, returns the
// default config. The file is checked against the embedded JSON schema
// before it is decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes YAML config content.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return DefaultConfig(), nil
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the seed defaults resolve into a usable snapshot.
func (c *Config) Validate() error {
	d := c.StoreDefaults()
	params, err := settings.Resolve(d.Parameters)
	if err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	if _, err := settings.NewAvailability(d.Availability, params.DefaultDailyMinutes()); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	return nil
}

// StoreDefaults merges the configured overrides over the built-in defaults.
func (c *Config) StoreDefaults() store.Defaults {
	d := store.Defaults{
		Parameters:   make(map[string]int, len(settings.DefaultValues)),
		Descriptions: settings.Descriptions,
		Revisions:    make(map[int]int, len(settings.DefaultRevisionTable)),
		Availability: make(map[string]int, len(c.Defaults.Availability)),
	}
	for k, v := range settings.DefaultValues {
		d.Parameters[k] = v
	}
	for k, v := range c.Defaults.Parameters {
		d.Parameters[k] = v
	}
	for p, n := range settings.DefaultRevisionTable {
		d.Revisions[p] = n
	}
	for _, e := range c.Defaults.RevisionTable {
		d.Revisions[e.Priority] = e.Sessions
	}
	for k, v := range c.Defaults.Availability {
		d.Availability[k] = v
	}
	return d
}

// RevisionEntries returns the effective revision table as a sorted list.
func (c *Config) RevisionEntries() []RevisionEntry {
	table := c.StoreDefaults().Revisions
	out := make([]RevisionEntry, 0, len(table))
	for p, n := range table {
		out = append(out, RevisionEntry{Priority: p, Sessions: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func validateDocument(doc any) error {
	// The jsonschema library expects plain JSON values. Round-trip through
	// encoding/json after turning YAML-only shapes into JSON ones.
	raw, err := json.Marshal(normalize(doc))
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("convert config: %w", err)
	}

	compiled, err := compileSchema()
	if err != nil {
		return err
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return compiled, nil
}

// normalize rewrites YAML decoding artefacts (non-string map keys, unquoted
// dates) into values encoding/json accepts.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[keyString(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	case time.Time:
		return calendar.Format(v)
	}
	return v
}

func keyString(k any) string {
	if t, ok := k.(time.Time); ok {
		return calendar.Format(t)
	}
	return fmt.Sprint(k)
}
