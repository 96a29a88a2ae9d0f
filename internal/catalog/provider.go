package catalog

import (
	"log/slog"
	"net/http"

	"github.com/thoreinstein/platdetect/internal/config"
	"github.com/thoreinstein/platdetect/internal/paths"
)

// Metadata element names for runtime/SDK pair listings.
const (
	RuntimeVersionElement = "Runtime_version"
	SDKVersionElement     = "Sdk_version"
)

// Options carries collaborators shared by every provider.
type Options struct {
	Client *http.Client
	Logger *slog.Logger
}

// NewProvider picks the catalog source for platform from configuration:
// an explicit supported_versions list wins, otherwise dynamic_install selects
// the remote SDK storage and its absence the local install root. Remote and
// local sources are never mixed.
func NewProvider(platform string, cfg *config.Config, opts Options) Provider {
	settings := cfg.Platform(platform)

	switch {
	case len(settings.SupportedVersions) > 0:
		return &StaticProvider{
			Platform:       platform,
			Versions:       settings.SupportedVersions,
			DefaultVersion: settings.DefaultVersion,
		}
	case cfg != nil && cfg.DynamicInstall:
		p := &RemoteProvider{
			Platform:       platform,
			BaseURL:        cfg.SDKStorageURL,
			VersionElement: DefaultVersionElement,
			Client:         opts.Client,
			Logger:         opts.Logger,
		}
		if platform == paths.PlatformDotNet {
			p.VersionElement = RuntimeVersionElement
			p.SDKElement = SDKVersionElement
		}
		return p
	default:
		return &LocalProvider{
			Platform:       platform,
			Dir:            settings.InstallDir,
			DefaultVersion: settings.DefaultVersion,
			Logger:         opts.Logger,
		}
	}
}

// NewVersionsFromConfig builds a cached Versions façade for platform.
//
// A configured default_version overrides the default of every source,
// including the remote pointer.
func NewVersionsFromConfig(platform string, cfg *config.Config, opts Options) *Versions {
	provider := NewCache(platform, NewProvider(platform, cfg, opts))

	var vopts []VersionsOption
	if cfg != nil {
		if o, ok := cfg.Platforms[platform]; ok && o.DefaultVersion != "" {
			vopts = append(vopts, WithDefaultVersion(o.DefaultVersion))
		}
	}
	return NewVersions(platform, provider, vopts...)
}

// Set holds one Versions façade per platform.
type Set map[string]*Versions

// NewSet builds façades for every known platform.
func NewSet(cfg *config.Config, opts Options) Set {
	set := make(Set, len(paths.Platforms()))
	for _, name := range paths.Platforms() {
		set[name] = NewVersionsFromConfig(name, cfg, opts)
	}
	return set
}
