package minihttp

import (
	"context"
	"testing"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/store"
	badgerstore "github.com/indigo-web/minihttp/store/badger"
	fsstore "github.com/indigo-web/minihttp/store/fs"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("fs", func(t *testing.T) {
		s, err := openStore(ctx, config.Files{Store: config.StoreFS, Directory: t.TempDir()})
		require.NoError(t, err)
		require.IsType(t, new(fsstore.Store), s)
		require.NoError(t, s.Close())
	})

	t.Run("fs without directory", func(t *testing.T) {
		s, err := openStore(ctx, config.Files{Store: config.StoreFS})
		require.NoError(t, err)
		_, err = s.Read(ctx, "foo")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("badger in memory", func(t *testing.T) {
		s, err := openStore(ctx, config.Files{
			Store:   config.StoreBadger,
			Options: map[string]any{"in_memory": "true"},
		})
		require.NoError(t, err)
		require.IsType(t, new(badgerstore.Store), s)
		require.NoError(t, s.Close())
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := openStore(ctx, config.Files{
			Store:   config.StoreBadger,
			Options: map[string]any{"in_memroy": true},
		})
		require.Error(t, err)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		_, err := openStore(ctx, config.Files{Store: config.StoreS3, Options: map[string]any{"region": "eu-west-1"}})
		require.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := openStore(ctx, config.Files{Store: "ftp"})
		require.Error(t, err)
	})
}
