package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".imgtag"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"

	// EnvSiteRoot overrides Config.SiteRoot.
	EnvSiteRoot = "IMGTAG_SITE_ROOT"
	// EnvNoLookup disables dimension lookup when truthy.
	EnvNoLookup = "IMGTAG_NO_LOOKUP"
	// EnvConfig points at an alternative config file.
	EnvConfig = "IMGTAG_CONFIG"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a loader for $IMGTAG_CONFIG, or ~/.imgtag/config.yaml.
func NewLoader() (*Loader, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return NewLoaderWithPath(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewLoaderWithPath(filepath.Join(homeDir, ConfigDirName, ConfigFileName)), nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads the configuration file, expanding ${VAR} references. Keys missing from
// the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	return l.load(expandEnvVars)
}

// LoadRaw reads the configuration without expanding environment variables.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.load(func(s string) string { return s })
}

func (l *Loader) load(expand func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(expand(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the file.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Lookup.Timeout < 0 {
		return fmt.Errorf("lookup.timeout must not be negative: %s", c.Lookup.Timeout)
	}
	if c.Lookup.MaxBytes < 0 {
		return fmt.Errorf("lookup.max_bytes must not be negative: %d", c.Lookup.MaxBytes)
	}
	if c.Render.Concurrency < 0 {
		return fmt.Errorf("render.concurrency must not be negative: %d", c.Render.Concurrency)
	}
	return nil
}

// ApplyEnv overrides configuration values from IMGTAG_* environment variables.
func (c *Config) ApplyEnv() {
	c.SiteRoot = GetEnvOrDefault(EnvSiteRoot, c.SiteRoot)
	if GetEnvBool(EnvNoLookup) {
		c.Lookup.Enabled = false
	}
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true", "1" or "yes".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
