// Package config provides configuration management for platdetect using Viper.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
)

// EnvPrefix prefixes every environment variable read by platdetect.
const EnvPrefix = "PLATDETECT"

// configDirEnv overrides the config search directory.
const configDirEnv = EnvPrefix + "_CONFIG_DIR"

// Config represents the top-level configuration structure.
type Config struct {
	// DynamicInstall selects the remote SDK storage catalog instead of the
	// locally installed versions.
	DynamicInstall bool `mapstructure:"dynamic_install" yaml:"dynamic_install"`

	// SDKStorageURL is the base URL of the SDK storage account.
	SDKStorageURL string `mapstructure:"sdk_storage_url" yaml:"sdk_storage_url"`

	Platforms map[string]PlatformOverride `mapstructure:"platforms" yaml:"platforms"`
}

// PlatformOverride contains configuration overrides for a specific platform.
type PlatformOverride struct {
	// DefaultVersion replaces the catalog default.
	DefaultVersion string `mapstructure:"default_version" yaml:"default_version,omitempty"`

	// SupportedVersions, when set, is used as the catalog and no discovery happens.
	SupportedVersions []string `mapstructure:"supported_versions" yaml:"supported_versions,omitempty"`

	// InstallDir is the local install root scanned when DynamicInstall is off.
	InstallDir string `mapstructure:"install_dir" yaml:"install_dir,omitempty"`
}

// Platform returns the settings for name with built-in defaults filled in.
func (c *Config) Platform(name string) PlatformOverride {
	var o PlatformOverride
	if c != nil && c.Platforms != nil {
		o = c.Platforms[name]
	}
	if o.InstallDir == "" {
		o.InstallDir = paths.InstallDir(name)
	}
	if o.DefaultVersion == "" {
		o.DefaultVersion = paths.DefaultVersion(name)
	}
	return o
}

// Init initializes Viper with default configuration.
// It discards any previous Viper state, so it is safe to call again in tests.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(configDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support: PLATDETECT_SDK_STORAGE_URL,
	// PLATDETECT_PLATFORMS_NODEJS_DEFAULT_VERSION, ...
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("dynamic_install", false)
	viper.SetDefault("sdk_storage_url", "")
	for _, name := range paths.Platforms() {
		prefix := "platforms." + name + "."
		viper.SetDefault(prefix+"default_version", "")
		viper.SetDefault(prefix+"supported_versions", []string{})
		viper.SetDefault(prefix+"install_dir", paths.InstallDir(name))

		// Short forms: PLATDETECT_PYTHON_SUPPORTED_VERSIONS=3.8.2,3.7.1
		upper := strings.ToUpper(name)
		_ = viper.BindEnv(prefix+"default_version",
			EnvPrefix+"_PLATFORMS_"+upper+"_DEFAULT_VERSION",
			EnvPrefix+"_"+upper+"_DEFAULT_VERSION")
		_ = viper.BindEnv(prefix+"supported_versions",
			EnvPrefix+"_PLATFORMS_"+upper+"_SUPPORTED_VERSIONS",
			EnvPrefix+"_"+upper+"_SUPPORTED_VERSIONS")
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
// The result is validated; all validation failures are reported together.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load, defaults apply
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrConfiguration)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrConfiguration)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrConfiguration)
	}
	normalize(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), errors.ErrConfiguration)
	}

	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment keep their values.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return errors.Mark(errors.Wrapf(err, "loading env file %s", path), errors.ErrConfiguration)
	}
	return nil
}

// ConfigFileUsed returns the file Load read, or an empty string.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// PlatformNames returns the configured platform keys, sorted.
func (c *Config) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for name := range c.Platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalize trims values and drops empty list entries left by env splitting.
func normalize(cfg *Config) {
	cfg.SDKStorageURL = strings.TrimSpace(cfg.SDKStorageURL)
	for name, o := range cfg.Platforms {
		o.DefaultVersion = strings.TrimSpace(o.DefaultVersion)
		var versions []string
		for _, v := range o.SupportedVersions {
			if v = strings.TrimSpace(v); v != "" {
				versions = append(versions, v)
			}
		}
		o.SupportedVersions = versions
		cfg.Platforms[name] = o
	}
}
