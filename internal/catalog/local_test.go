package catalog

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/thoreinstein/platdetect/internal/logging"
)

func TestLocalProvider_Catalog(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"12.16.1", "8.17.0", "14.3.0", "lts", "latest", "14.3"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "10.0.0"), []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "14.3.0"), filepath.Join(root, "14.4.0")); err != nil {
		t.Fatal(err)
	}

	p := &LocalProvider{
		Platform:       "nodejs",
		Dir:            root,
		DefaultVersion: "12.16.1",
		Logger:         logging.ForTest(t),
	}

	cat, err := p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	want := []string{"8.17.0", "12.16.1", "14.3.0", "14.4.0"}
	if !slices.Equal(cat.Supported, want) {
		t.Errorf("Supported = %v, want %v", cat.Supported, want)
	}
	if cat.Default != "12.16.1" {
		t.Errorf("Default = %q, want 12.16.1", cat.Default)
	}
	if cat.Source != SourceLocal {
		t.Errorf("Source = %q, want %q", cat.Source, SourceLocal)
	}
	if !cat.Contains("14.3.0") || cat.Contains("lts") {
		t.Error("Contains() disagrees with Supported")
	}
}

func TestLocalProvider_MissingDir(t *testing.T) {
	p := &LocalProvider{
		Platform:       "php",
		Dir:            filepath.Join(t.TempDir(), "missing"),
		DefaultVersion: "7.3.15",
		Logger:         logging.NewDiscard(),
	}

	cat, err := p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if cat.Supported == nil || len(cat.Supported) != 0 {
		t.Errorf("Supported = %#v, want empty non-nil slice", cat.Supported)
	}
	if cat.Default != "7.3.15" {
		t.Errorf("Default = %q, want 7.3.15", cat.Default)
	}
}

func TestStaticProvider_Catalog(t *testing.T) {
	p := &StaticProvider{
		Platform:       "python",
		Versions:       []string{"3.8.2", "3.7.1", "bogus", "3.7.1"},
		DefaultVersion: "3.7.1",
	}

	cat, err := p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if want := []string{"3.7.1", "3.8.2"}; !slices.Equal(cat.Supported, want) {
		t.Errorf("Supported = %v, want %v", cat.Supported, want)
	}
	if p.Source() != SourceStatic || cat.Source != SourceStatic {
		t.Errorf("Source = %q, want %q", cat.Source, SourceStatic)
	}
}
