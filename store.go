package spz

import (
	"context"
	"log/slog"

	"github.com/arloliu/spz/blobstore"
	"github.com/arloliu/spz/splat"
)

// LoadFrom fetches name from store and decodes it. The read strategy does not apply.
func (l *Loader) LoadFrom(ctx context.Context, store blobstore.Store, name string) (*splat.GaussianSplat, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.cfg.logger.Debug("spz: fetched object", slog.String("name", name), slog.Int("bytes", len(data)))

	return l.LoadBytes(data)
}

// SaveTo encodes s and stores it as name.
func (sv *Saver) SaveTo(ctx context.Context, store blobstore.Store, name string, s *splat.GaussianSplat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := sv.Bytes(s)
	if err != nil {
		return err
	}

	if err := store.Put(ctx, name, data); err != nil {
		return err
	}
	sv.cfg.logger.Debug("spz: stored object", slog.String("name", name), slog.Int("bytes", len(data)))

	return nil
}

// LoadFromStore loads name from store with default settings plus opts.
func LoadFromStore(ctx context.Context, store blobstore.Store, name string, opts ...LoadOption) (*splat.GaussianSplat, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	return l.LoadFrom(ctx, store, name)
}

// SaveToStore saves s as name in store with default settings plus opts.
func SaveToStore(ctx context.Context, store blobstore.Store, name string, s *splat.GaussianSplat, opts ...SaveOption) error {
	sv, err := NewSaver(opts...)
	if err != nil {
		return err
	}

	return sv.SaveTo(ctx, store, name, s)
}
