package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".lpanalyzer"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// FileDefaults holds analyzer defaults loaded from the config file.
// Flags override file values; file values override built-in defaults.
type FileDefaults struct {
	// Genre is the default landing-page category.
	Genre string `yaml:"genre,omitempty"`

	// Provider is the default model backend.
	Provider string `yaml:"provider,omitempty"`

	// Model is the default model name for the selected provider.
	Model string `yaml:"model,omitempty"`

	// Verbosity is the default output detail level.
	Verbosity string `yaml:"verbosity,omitempty"`

	// Effort is the default reasoning effort level.
	Effort string `yaml:"effort,omitempty"`
}

// SiteConfig holds per-site overrides keyed by hostname.
type SiteConfig struct {
	// Genre overrides the genre for this site.
	Genre string `yaml:"genre,omitempty"`

	// ExtraInstruction is appended to the analysis prompt for this site.
	ExtraInstruction string `yaml:"extraInstruction,omitempty"`

	// Screenshot is the screenshot file for this site. Batch runs read
	// per-target screenshots from here because the --screenshot flag only
	// applies to a single target.
	Screenshot string `yaml:"screenshot,omitempty"`
}

// File represents the structure of the .lpanalyzer configuration file.
type File struct {
	// Defaults contains analyzer-wide default settings.
	Defaults FileDefaults `yaml:"defaults,omitempty"`

	// Sites maps hostnames to their site-specific overrides.
	// Keys are bare hostnames (e.g. "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// SiteFor returns the overrides for a hostname, or a zero SiteConfig when
// none are configured.
func (cf *File) SiteFor(host string) SiteConfig {
	if cf == nil || cf.Sites == nil {
		return SiteConfig{}
	}
	return cf.Sites[host]
}

// LoadConfigFile loads analyzer configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error appropriately based on whether the config file path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .lpanalyzer in the current directory
//  3. Look for .lpanalyzer in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
