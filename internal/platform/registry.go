package platform

import (
	"sync"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a detector with a name that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when attempting to register
	// a detector with an unknown platform name.
	ErrInvalidPlatformName = errors.New("invalid platform name")

	// ErrUnknownPlatform is returned when a requested platform has no detector.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// Registry holds the detectors available to a process.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		detectors: make(map[string]Detector),
	}
}

// Register adds a detector.
// Returns an error if:
//   - The detector's name is not a known platform (per paths.ValidPlatform)
//   - A detector with the same name is already registered
func (r *Registry) Register(d Detector) error {
	name := d.Name()
	if !paths.ValidPlatform(name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.detectors[name]; exists {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", name)
	}

	r.detectors[name] = d
	return nil
}

// Get returns the detector registered under name, or nil.
func (r *Registry) Get(name string) Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.detectors[name]
}

// All returns the registered detectors in detection order
// (paths.Platforms: dotnet, php, python, nodejs).
func (r *Registry) All() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []Detector
	for _, name := range paths.Platforms() {
		if d, ok := r.detectors[name]; ok {
			results = append(results, d)
		}
	}
	return results
}

// Names returns the registered platform names in detection order.
func (r *Registry) Names() []string {
	var names []string
	for _, d := range r.All() {
		names = append(names, d.Name())
	}
	return names
}
