package catalog

import (
	"context"
	"slices"
)

// Source identifies where a catalog came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
	SourceStatic Source = "static"
)

// Catalog is an immutable snapshot of the versions available for a platform.
// Callers must not modify the slices or map it holds.
type Catalog struct {
	// Platform is the ecosystem name, e.g. "nodejs".
	Platform string `json:"platform" yaml:"platform"`

	// Source records which provider built the catalog.
	Source Source `json:"source" yaml:"source"`

	// Supported lists versions in ascending semantic-version order.
	Supported []string `json:"supported" yaml:"supported"`

	// Default is the version used when no constraint is declared.
	Default string `json:"default" yaml:"default"`

	// SDKVersions maps a runtime version to the SDK that ships it, for
	// platforms published as runtime/SDK pairs.
	SDKVersions map[string]string `json:"sdk_versions,omitempty" yaml:"sdk_versions,omitempty"`
}

// Contains reports whether version is listed verbatim.
func (c *Catalog) Contains(version string) bool {
	return slices.Contains(c.Supported, version)
}

// SDKFor returns the SDK version paired with a runtime version.
func (c *Catalog) SDKFor(runtime string) (string, bool) {
	sdk, ok := c.SDKVersions[runtime]
	return sdk, ok && sdk != ""
}

// Provider builds a catalog.
type Provider interface {
	// Catalog returns the platform's catalog. Implementations without a
	// cache build a fresh snapshot on every call.
	Catalog(ctx context.Context) (*Catalog, error)

	// Source identifies the provider kind.
	Source() Source
}
