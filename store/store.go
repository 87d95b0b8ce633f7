// Package store defines the read-only blob storage the /files/ routes are served from.
package store

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Store is a read-only mapping of file names onto their contents. Implementations must
// be safe for concurrent use.
type Store interface {
	// Read returns the whole content of the named file. Files that don't exist (or
	// aren't regular files) are reported with ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)
	Close() error
}

// CleanName normalizes a slash-separated file name relative to the store root. Names
// that are empty, absolute, contain NUL or backslashes, or that use a ".." segment
// anywhere are rejected with ErrInvalidName, so a name can never climb above the root.
func CleanName(name string) (string, error) {
	if len(name) == 0 || name[0] == '/' || strings.ContainsAny(name, "\x00\\") {
		return "", ErrInvalidName
	}

	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return "", ErrInvalidName
		}
	}

	cleaned := path.Clean(name)
	if cleaned == "." {
		return "", ErrInvalidName
	}

	return cleaned, nil
}

// Nothing is the store used when no serving directory is configured. Every file is
// reported missing.
type Nothing struct{}

func (Nothing) Read(context.Context, string) ([]byte, error) {
	return nil, ErrNotFound
}

func (Nothing) Close() error {
	return nil
}
