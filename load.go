package spz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
	"github.com/arloliu/spz/internal/options"
	"github.com/arloliu/spz/internal/source"
	"github.com/arloliu/spz/packed"
	"github.com/arloliu/spz/section"
	"github.com/arloliu/spz/splat"
)

// Loader reads splats from files or byte slices. A Loader is immutable and safe for
// concurrent use.
type Loader struct {
	cfg *LoadConfig
}

// NewLoader creates a Loader with the given options applied over the defaults.
func NewLoader(opts ...LoadOption) (*Loader, error) {
	cfg := newLoadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Loader{cfg: cfg}, nil
}

// Load reads the file at path and converts it into the configured coordinate system.
//
// ctx is checked before the file is opened and after it has been read; a cancelled
// load returns ctx.Err() and no splat.
func (l *Loader) Load(ctx context.Context, path string) (*splat.GaussianSplat, error) {
	p, err := l.LoadPacked(ctx, path)
	if err != nil {
		return nil, err
	}

	return splat.FromPacked(p, l.cfg.coordinateSystem)
}

// LoadPacked reads the file at path without dequantizing it.
func (l *Loader) LoadPacked(ctx context.Context, path string) (*packed.Gaussians, error) {
	start := time.Now()

	src, err := source.Open(ctx, path, l.cfg.readStrategy)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := src.Bytes()
	p, compressionType, err := l.decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	l.cfg.logger.Debug("spz: loaded file",
		slog.String("path", path),
		slog.String("strategy", src.Strategy().String()),
		slog.String("compression", compressionType.String()),
		slog.Int("bytes", len(data)),
		slog.Int("num_points", p.NumPoints),
		slog.Int("sh_degree", p.SHDegree),
		slog.Duration("elapsed", time.Since(start)),
	)

	return p, nil
}

// LoadBytes decodes a serialized splat held in memory.
func (l *Loader) LoadBytes(data []byte) (*splat.GaussianSplat, error) {
	p, err := l.LoadPackedBytes(data)
	if err != nil {
		return nil, err
	}

	return splat.FromPacked(p, l.cfg.coordinateSystem)
}

// LoadPackedBytes decodes a serialized splat held in memory without dequantizing it.
func (l *Loader) LoadPackedBytes(data []byte) (*packed.Gaussians, error) {
	p, compressionType, err := l.decode(data)
	if err != nil {
		return nil, err
	}

	l.cfg.logger.Debug("spz: loaded bytes",
		slog.String("compression", compressionType.String()),
		slog.Int("bytes", len(data)),
		slog.Int("num_points", p.NumPoints),
	)

	return p, nil
}

// decode decompresses data and parses it after validating the header.
func (l *Loader) decode(data []byte) (*packed.Gaussians, format.CompressionType, error) {
	if len(data) == 0 {
		return nil, 0, errs.ErrDataIsEmpty
	}

	var (
		payload         []byte
		compressionType = l.cfg.compression
		err             error
	)
	if compressionType == 0 {
		payload, compressionType, err = compress.DecompressAuto(data)
	} else {
		var codec compress.Codec
		if codec, err = compress.GetCodec(compressionType); err == nil {
			payload, err = codec.Decompress(data)
		}
	}
	if err != nil {
		return nil, compressionType, err
	}

	if _, err := section.ReadValidatedHeader(payload); err != nil {
		return nil, compressionType, err
	}

	p, err := packed.Parse(payload)
	if err != nil {
		return nil, compressionType, err
	}

	return p, compressionType, nil
}

// Load reads a .spz file with default settings plus opts.
func Load(path string, opts ...LoadOption) (*splat.GaussianSplat, error) {
	return LoadContext(context.Background(), path, opts...)
}

// LoadContext is Load with cancellation at the file I/O boundaries.
func LoadContext(ctx context.Context, path string, opts ...LoadOption) (*splat.GaussianSplat, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	return l.Load(ctx, path)
}

// LoadBytes decodes a serialized splat held in memory.
func LoadBytes(data []byte, opts ...LoadOption) (*splat.GaussianSplat, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	return l.LoadBytes(data)
}

// LoadResult is the outcome of an asynchronous load.
type LoadResult struct {
	Splat *splat.GaussianSplat
	Err   error
}

// LoadAsync runs LoadContext in a new goroutine. The channel receives exactly one
// result and is then closed.
func LoadAsync(ctx context.Context, path string, opts ...LoadOption) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		s, err := LoadContext(ctx, path, opts...)
		ch <- LoadResult{Splat: s, Err: err}
	}()

	return ch
}

// LoadMany loads paths concurrently, at most limit at a time (no limit when limit <= 0).
// The result has the same order as paths. The first failure cancels the remaining loads.
func LoadMany(ctx context.Context, paths []string, limit int, opts ...LoadOption) ([]*splat.GaussianSplat, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	out := make([]*splat.GaussianSplat, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			s, err := l.Load(ctx, path)
			if err != nil {
				return err
			}
			out[i] = s

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadHeader reads and validates only the header of the file at path.
//
// Only the first bytes of the compressed stream are decompressed, so this is cheap
// even for large files.
func ReadHeader(path string) (section.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return section.Header{}, errs.IO("open "+path, err)
	}
	defer f.Close()

	return ReadHeaderFrom(f)
}

// ReadHeaderFrom reads and validates the header at the start of a serialized splat stream.
func ReadHeaderFrom(r io.Reader) (section.Header, error) {
	rc, _, err := compress.NewAutoReader(r)
	if err != nil {
		return section.Header{}, err
	}
	defer rc.Close()

	h, err := section.ReadHeader(rc)
	if err != nil {
		return section.Header{}, err
	}

	if err := h.Validate(); err != nil {
		return section.Header{}, err
	}

	return h, nil
}
