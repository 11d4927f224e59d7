package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotExist is returned by Open when no backing file exists for a ticker.
var ErrNotExist = errors.New("dataset does not exist")

// DatasetStore defines the contract of the backing store: one tabular file per ticker.
type DatasetStore interface {
	// List returns every ticker identifier known to the store.
	List(ctx context.Context) ([]string, error)
	// Open returns a reader over the ticker's file. Callers must close it.
	Open(ctx context.Context, ticker string) (io.ReadCloser, error)
	// Ping reports whether the store is reachable.
	Ping() error
}

type fileStore struct {
	dir string
	ext string
}

// NewFileStore returns a DatasetStore rooted at dir, matching files named <ticker><ext>.
func NewFileStore(dir, ext string) DatasetStore {
	return &fileStore{dir: dir, ext: ext}
}

// List enumerates regular files carrying the configured extension.
// Subdirectories and files with other extensions are ignored.
func (s *fileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	tickers := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		ticker := strings.TrimSuffix(e.Name(), s.ext)
		if ticker == "" {
			continue
		}
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers, nil
}

// Open resolves <dir>/<ticker><ext>. Tickers that are not a plain file name
// (path separators, "." or "..") never resolve.
func (s *fileStore) Open(ctx context.Context, ticker string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validTicker(ticker) {
		return nil, ErrNotExist
	}

	path := filepath.Join(s.dir, ticker+s.ext)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, ErrNotExist
	}
	return f, nil
}

// Ping checks that the configured directory exists and is a directory.
func (s *fileStore) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func validTicker(ticker string) bool {
	if ticker == "" || ticker == "." || ticker == ".." {
		return false
	}
	return !strings.ContainsAny(ticker, `/\`) && !strings.ContainsRune(ticker, 0)
}
