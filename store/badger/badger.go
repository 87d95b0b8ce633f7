// Package badger serves files kept as values of a BadgerDB database, keyed by name.
package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/indigo-web/minihttp/store"
)

var _ store.Store = new(Store)

// Options are decoded from the files.options config section.
type Options struct {
	// InMemory opens an empty in-memory database instead of the directory.
	InMemory bool `mapstructure:"in_memory"`
}

type Store struct {
	db    *badger.DB
	owned bool
}

// New opens the database at dir. Unless in memory, it's opened read-only, so it can be
// shared with whatever process fills it.
func New(dir string, opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(dir).WithLogger(badgerLogger{})
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{})
	} else {
		badgerOpts = badgerOpts.WithReadOnly(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger database %q: %w", dir, err)
	}

	return &Store{db: db, owned: true}, nil
}

// FromDB wraps an already opened database. Closing the store leaves it open.
func FromDB(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := store.CleanName(name)
	if err != nil {
		return nil, err
	}

	var content []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}

		content, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("%s: %w", name, store.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if content == nil {
		content = []byte{}
	}

	return content, nil
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}

	return s.db.Close()
}

// badgerLogger routes badger's own messages into ours. Its info messages are chatty,
// hence demoted to debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, v ...any) {
	logger.Error("badger: "+strings.TrimSpace(format), v...)
}

func (badgerLogger) Warningf(format string, v ...any) {
	logger.Warn("badger: "+strings.TrimSpace(format), v...)
}

func (badgerLogger) Infof(format string, v ...any) {
	logger.Debug("badger: "+strings.TrimSpace(format), v...)
}

func (badgerLogger) Debugf(format string, v ...any) {
	logger.Debug("badger: "+strings.TrimSpace(format), v...)
}
