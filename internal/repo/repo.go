package repo

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/pkg/fileutil"
)

// byteOrderMark is the UTF-8 encoding of U+FEFF.
const byteOrderMark = "\ufeff"

// DefaultCacheSize is the number of file contents kept by a view.
const DefaultCacheSize = 64

// ErrNotDirectory is returned when a local source root is not a directory.
var ErrNotDirectory = errors.New("source root is not a directory")

// SourceRepo is read-only access to a source tree.
// Implementations must be safe for concurrent use.
type SourceRepo interface {
	// Root describes the tree, typically its directory on disk.
	Root() string

	// FileExists reports whether the joined path names a regular file.
	FileExists(elem ...string) bool

	// DirExists reports whether the joined path names a directory.
	DirExists(elem ...string) bool

	// ReadFile returns the full text of the joined path.
	ReadFile(elem ...string) (string, error)

	// ReadAllLines returns the lines of the joined path without line terminators.
	ReadAllLines(elem ...string) ([]string, error)

	// EnumerateFiles returns slash-separated paths, relative to the root, of
	// files whose base name matches pattern (path.Match syntax). The search
	// starts at the directory named by dir (the root when empty) and descends
	// into subdirectories when recursive is set. Results are sorted.
	EnumerateFiles(pattern string, recursive bool, dir ...string) ([]string, error)
}

// Option configures an FSRepo.
type Option func(*FSRepo)

// WithCacheSize sets the number of cached file contents. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(r *FSRepo) {
		r.cacheSize = n
	}
}

// WithRoot sets the description returned by Root.
func WithRoot(root string) Option {
	return func(r *FSRepo) {
		r.root = root
	}
}

// FSRepo implements SourceRepo over an fs.FS.
type FSRepo struct {
	fsys      fs.FS
	root      string
	cacheSize int
	cache     *lru.Cache[string, string]
}

var _ SourceRepo = (*FSRepo)(nil)

// New creates a view over fsys.
func New(fsys fs.FS, opts ...Option) *FSRepo {
	r := &FSRepo{
		fsys:      fsys,
		root:      ".",
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cacheSize > 0 {
		// Only fails for a non-positive size
		r.cache, _ = lru.New[string, string](r.cacheSize)
	}
	return r
}

// NewLocal creates a view over the directory dir on the local filesystem.
func NewLocal(dir string, opts ...Option) (*FSRepo, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "opening source directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrNotDirectory, "%s", dir)
	}

	opts = append([]Option{WithRoot(dir)}, opts...)
	return New(os.DirFS(dir), opts...), nil
}

// Root returns the tree description.
func (r *FSRepo) Root() string {
	return r.root
}

// FileExists reports whether the joined path names a regular file.
func (r *FSRepo) FileExists(elem ...string) bool {
	info, ok := r.stat(elem)
	return ok && info.Mode().IsRegular()
}

// DirExists reports whether the joined path names a directory.
func (r *FSRepo) DirExists(elem ...string) bool {
	info, ok := r.stat(elem)
	return ok && info.IsDir()
}

func (r *FSRepo) stat(elem []string) (fs.FileInfo, bool) {
	name, ok := join(elem)
	if !ok {
		return nil, false
	}
	info, err := fs.Stat(r.fsys, name)
	if err != nil {
		return nil, false
	}
	return info, true
}

// ReadFile returns the text of the joined path, bounded by fileutil.MaxFileSize.
// A leading UTF-8 byte order mark is removed.
func (r *FSRepo) ReadFile(elem ...string) (string, error) {
	name, ok := join(elem)
	if !ok {
		return "", errors.Wrapf(fs.ErrInvalid, "reading %q", strings.Join(elem, "/"))
	}

	if r.cache != nil {
		if text, hit := r.cache.Get(name); hit {
			return text, nil
		}
	}

	data, err := fileutil.ReadFileWithLimit(r.fsys, name)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", name)
	}

	text := strings.TrimPrefix(string(data), byteOrderMark)
	if r.cache != nil {
		r.cache.Add(name, text)
	}
	return text, nil
}

// ReadAllLines returns the lines of the joined path. Both \n and \r\n line
// endings are accepted; a trailing newline does not produce an empty line.
func (r *FSRepo) ReadAllLines(elem ...string) ([]string, error) {
	text, err := r.ReadFile(elem...)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// EnumerateFiles lists files matching pattern below dir. Subdirectories and
// entries that cannot be read are skipped; only an unreadable start
// directory is an error.
func (r *FSRepo) EnumerateFiles(pattern string, recursive bool, dir ...string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}

	start := "."
	if len(dir) > 0 {
		var ok bool
		if start, ok = join(dir); !ok {
			return nil, errors.Wrapf(fs.ErrInvalid, "enumerating %q", strings.Join(dir, "/"))
		}
	}
	if !r.DirExists(start) {
		return nil, nil
	}

	var matches []string
	err := fs.WalkDir(r.fsys, start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			switch {
			case p == start:
				return err
			case d != nil && d.IsDir():
				return fs.SkipDir
			default:
				return nil
			}
		}
		if d.IsDir() {
			if p != start && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := path.Match(pattern, d.Name()); ok && d.Type().IsRegular() {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "enumerating %s in %s", pattern, start)
	}

	sort.Strings(matches)
	return matches, nil
}

// SplitLines splits text into lines without terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// join builds a valid fs.FS path from segments.
func join(elem []string) (string, bool) {
	if len(elem) == 0 {
		return ".", true
	}
	name := path.Join(elem...)
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
