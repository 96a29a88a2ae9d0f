package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/thoreinstein/platdetect/internal/errors"
)

// countingProvider records calls and can block or fail on demand.
type countingProvider struct {
	calls   atomic.Int32
	release chan struct{}
	failN   int32
	cat     *Catalog
}

func (p *countingProvider) Source() Source { return SourceStatic }

func (p *countingProvider) Catalog(ctx context.Context) (*Catalog, error) {
	n := p.calls.Add(1)
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= p.failN {
		return nil, errors.Mark(errors.New("storage unavailable"), errors.ErrCatalogLoad)
	}
	return p.cat, nil
}

func TestCache_ConcurrentColdLoad(t *testing.T) {
	p := &countingProvider{
		release: make(chan struct{}),
		cat:     &Catalog{Platform: "nodejs", Supported: []string{"12.16.1"}, Default: "12.16.1"},
	}
	c := NewCache("nodejs", p)

	const callers = 16
	var (
		wg      sync.WaitGroup
		results = make([]*Catalog, callers)
		errs    = make([]error, callers)
	)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Catalog(context.Background())
		}()
	}
	close(p.release)
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d error = %v", i, errs[i])
		}
		if results[i] != p.cat {
			t.Errorf("caller %d got a different snapshot", i)
		}
	}
	if got := p.calls.Load(); got != 1 {
		t.Errorf("provider calls = %d, want 1", got)
	}
	if got := c.Loads(); got != 1 {
		t.Errorf("Loads() = %d, want 1", got)
	}
	if state, err := c.State(); state != StateLoaded || err != nil {
		t.Errorf("State() = %v, %v, want loaded", state, err)
	}

	// Warm calls never reach the provider
	if _, err := c.Catalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := p.calls.Load(); got != 1 {
		t.Errorf("provider calls after warm read = %d, want 1", got)
	}
}

func TestCache_FailedLoadIsRetried(t *testing.T) {
	p := &countingProvider{
		failN: 1,
		cat:   &Catalog{Platform: "php", Supported: []string{"7.3.15"}, Default: "7.3.15"},
	}
	c := NewCache("php", p)

	if state, _ := c.State(); state != StateUnloaded {
		t.Fatalf("initial State() = %v, want unloaded", state)
	}

	_, err := c.Catalog(context.Background())
	if !errors.Is(err, errors.ErrCatalogLoad) {
		t.Fatalf("first Catalog() error = %v, want ErrCatalogLoad", err)
	}
	state, lastErr := c.State()
	if state != StateFailed || lastErr == nil {
		t.Errorf("State() = %v, %v, want failed with error", state, lastErr)
	}

	cat, err := c.Catalog(context.Background())
	if err != nil {
		t.Fatalf("second Catalog() error = %v", err)
	}
	if cat.Default != "7.3.15" {
		t.Errorf("Default = %q, want 7.3.15", cat.Default)
	}
	if got := c.Loads(); got != 2 {
		t.Errorf("Loads() = %d, want 2", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoading, "loading"},
		{StateLoaded, "loaded"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
