package catalog

import (
	"context"
	"strings"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

// Versions answers default and constraint queries for one platform.
type Versions struct {
	platform        string
	provider        Provider
	defaultOverride string
}

// VersionsOption configures Versions.
type VersionsOption func(*Versions)

// WithDefaultVersion replaces the catalog default, whatever its source.
func WithDefaultVersion(version string) VersionsOption {
	return func(v *Versions) {
		v.defaultOverride = strings.TrimSpace(version)
	}
}

// NewVersions returns a façade over provider. Wrap the provider in a Cache
// when the catalog should be built once.
func NewVersions(platform string, provider Provider, opts ...VersionsOption) *Versions {
	v := &Versions{
		platform: platform,
		provider: provider,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Platform returns the platform name.
func (v *Versions) Platform() string {
	return v.platform
}

// Catalog returns the provider's catalog with any default override applied.
func (v *Versions) Catalog(ctx context.Context) (*Catalog, error) {
	cat, err := v.provider.Catalog(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s versions", v.platform)
	}
	if v.defaultOverride != "" && v.defaultOverride != cat.Default {
		shadow := *cat
		shadow.Default = v.defaultOverride
		return &shadow, nil
	}
	return cat, nil
}

// Default returns the effective default version.
func (v *Versions) Default(ctx context.Context) (string, error) {
	cat, err := v.Catalog(ctx)
	if err != nil {
		return "", err
	}
	return cat.Default, nil
}

// Resolve returns the greatest supported version satisfying constraint. An
// empty constraint resolves the default version. The returned error is an
// *resolver.UnsupportedVersionError carrying the platform name when nothing
// matches.
func (v *Versions) Resolve(ctx context.Context, constraint string) (string, error) {
	cat, err := v.Catalog(ctx)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(constraint) == "" {
		constraint = cat.Default
	}

	version, err := resolver.Resolve(constraint, cat.Supported)
	if err != nil {
		var uv *resolver.UnsupportedVersionError
		if errors.As(err, &uv) {
			uv.Platform = v.platform
		}
		return "", err
	}
	return version, nil
}
