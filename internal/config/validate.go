package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidPlatform indicates an unrecognized platform name.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidURL indicates the storage URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidVersion indicates a version or constraint does not parse.
	ErrInvalidVersion = errors.New("invalid version")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.SDKStorageURL != "" {
		if err := validateURL(cfg.SDKStorageURL); err != nil {
			errs = append(errs, &FieldError{
				Field: "sdk_storage_url",
				Value: cfg.SDKStorageURL,
				Err:   err,
			})
		}
	}

	for _, name := range cfg.PlatformNames() {
		override := cfg.Platforms[name]

		if !paths.ValidPlatform(name) {
			errs = append(errs, &PlatformError{
				Platform: name,
				Err:      ErrInvalidPlatform,
			})
			continue
		}

		if override.InstallDir != "" {
			if err := validatePath(override.InstallDir); err != nil {
				errs = append(errs, &PathError{
					Field: "platforms." + name + ".install_dir",
					Path:  override.InstallDir,
					Err:   err,
				})
			}
		}

		if override.DefaultVersion != "" && !resolver.Valid(override.DefaultVersion) {
			errs = append(errs, &FieldError{
				Field: "platforms." + name + ".default_version",
				Value: override.DefaultVersion,
				Err:   ErrInvalidVersion,
			})
		}

		for _, v := range override.SupportedVersions {
			if !resolver.IsVersion(v) {
				errs = append(errs, &FieldError{
					Field: "platforms." + name + ".supported_versions",
					Value: v,
					Err:   ErrInvalidVersion,
				})
			}
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// PlatformError represents an error for a specific platform.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// FieldError represents an invalid scalar value.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
