package fileutil

import (
	"io"
	"io/fs"

	"github.com/thoreinstein/platdetect/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// Manifests and version pointers are far below it.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads name from fsys up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(fsys fs.FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", name)
		}
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	return ReadAllWithLimit(f)
}

// ReadAllWithLimit reads r until EOF or MaxFileSize, whichever comes first.
// Exceeding the limit returns ErrFileTooLarge.
func ReadAllWithLimit(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
