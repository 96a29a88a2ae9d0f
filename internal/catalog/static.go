package catalog

import (
	"context"

	"github.com/thoreinstein/platdetect/internal/resolver"
)

// StaticProvider serves versions taken from configuration.
type StaticProvider struct {
	Platform       string
	Versions       []string
	DefaultVersion string
}

var _ Provider = (*StaticProvider)(nil)

// Source returns SourceStatic.
func (p *StaticProvider) Source() Source {
	return SourceStatic
}

// Catalog returns the configured versions sorted ascending. Entries that are
// not semantic versions are dropped.
func (p *StaticProvider) Catalog(_ context.Context) (*Catalog, error) {
	return &Catalog{
		Platform:  p.Platform,
		Source:    SourceStatic,
		Supported: resolver.Sort(p.Versions),
		Default:   p.DefaultVersion,
	}, nil
}
