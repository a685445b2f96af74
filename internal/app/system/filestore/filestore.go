// Package filestore keeps uploaded documents and videos on an afero
// filesystem. Production uses a directory on disk; tests use memory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("file not found")

// ErrInvalidKey is returned for keys that would escape the store root.
var ErrInvalidKey = errors.New("invalid file key")

// Store reads and writes files under a root.
type Store struct {
	fs  afero.Fs
	now func() time.Time
}

// New wraps an existing filesystem.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs, now: time.Now}
}

// NewLocal stores files under root on the local disk, creating it if needed.
func NewLocal(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// Info describes a stored file.
type Info struct {
	Key  string
	Size int64
}

// Put copies r into a new file and returns its key, shaped
// "<prefix>/<yyyy>/<mm>/<id>-<name>".
func (s *Store) Put(ctx context.Context, prefix, filename string, r io.Reader) (Info, error) {
	now := s.now().UTC()
	key := path.Join(
		cleanSegment(prefix),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		uuid.NewString()[:8]+"-"+SafeName(filename),
	)

	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return Info{}, fmt.Errorf("create dir: %w", err)
	}
	f, err := s.fs.Create(key)
	if err != nil {
		return Info{}, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(key)
		return Info{}, fmt.Errorf("write file: %w", err)
	}
	return Info{Key: key, Size: n}, nil
}

// Open returns a reader for key. The caller must close it.
func (s *Store) Open(key string) (afero.File, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Stat returns the size of key.
func (s *Store) Stat(key string) (Info, error) {
	if !validKey(key) {
		return Info{}, ErrInvalidKey
	}
	fi, err := s.fs.Stat(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, ErrNotFound
		}
		return Info{}, err
	}
	return Info{Key: key, Size: fi.Size()}, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := s.fs.Remove(key)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SafeName reduces a client-supplied filename to letters, digits, dots,
// dashes, and underscores. Accented letters are kept.
func SafeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

func cleanSegment(s string) string {
	s = SafeName(s)
	if s == "file" {
		return "misc"
	}
	return s
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "" {
			return false
		}
	}
	return true
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
