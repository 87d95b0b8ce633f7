// Package fs serves files from a directory on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/indigo-web/minihttp/store"
)

var _ store.Store = new(Store)

// Store resolves names against a root directory. The root is opened once, lookups go
// through os.Root, thereby symlinks pointing outside of it aren't followed either.
type Store struct {
	root *os.Root
}

func New(dir string) (*Store, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open serving directory: %w", err)
	}

	return &Store{root: root}, nil
}

// Read opens the file read-only, measures it by seeking to the end and reads it whole.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := store.CleanName(name)
	if err != nil {
		return nil, err
	}

	file, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, store.ErrNotFound)
		}

		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file: %w", name, store.ErrNotFound)
	}

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek %s: %w", name, err)
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", name, err)
	}

	content := make([]byte, size)
	if _, err = io.ReadFull(file, content); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return content, nil
}

func (s *Store) Close() error {
	return s.root.Close()
}
