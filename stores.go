package minihttp

import (
	"context"
	"fmt"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/logger"
	"github.com/indigo-web/minihttp/store"
	badgerstore "github.com/indigo-web/minihttp/store/badger"
	fsstore "github.com/indigo-web/minihttp/store/fs"
	s3store "github.com/indigo-web/minihttp/store/s3"
	"github.com/mitchellh/mapstructure"
)

func openStore(ctx context.Context, files config.Files) (store.Store, error) {
	switch files.Store {
	case config.StoreFS:
		if files.Directory == "" {
			logger.Warn("no serving directory set, every /files/ request will be answered with 404")
			return store.Nothing{}, nil
		}

		fs, err := fsstore.New(files.Directory)
		if err != nil {
			return nil, err
		}

		return fs, nil
	case config.StoreS3:
		var opts s3store.Options
		if err := decodeOptions(files.Options, &opts); err != nil {
			return nil, err
		}

		s3, err := s3store.New(ctx, opts)
		if err != nil {
			return nil, err
		}

		return s3, nil
	case config.StoreBadger:
		var opts badgerstore.Options
		if err := decodeOptions(files.Options, &opts); err != nil {
			return nil, err
		}

		db, err := badgerstore.New(files.Directory, opts)
		if err != nil {
			return nil, err
		}

		return db, nil
	default:
		return nil, fmt.Errorf("unknown blob store %q", files.Store)
	}
}

// decodeOptions fills the backend options from the loosely typed config section, so
// "true" from an environment variable still makes a bool. Unknown keys are an error.
func decodeOptions(options map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}

	if err = decoder.Decode(options); err != nil {
		return fmt.Errorf("invalid files.options: %w", err)
	}

	return nil
}
