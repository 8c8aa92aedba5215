package spz

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/internal/options"
	"github.com/arloliu/spz/splat"
)

// writeChunk bounds how much is written between cancellation checks.
const writeChunk = 1 << 20

// Saver serializes splats to files or byte slices. A Saver is immutable and safe for
// concurrent use.
type Saver struct {
	cfg   *SaveConfig
	codec compress.Codec
}

// NewSaver creates a Saver with the given options applied over the defaults.
func NewSaver(opts ...SaveOption) (*Saver, error) {
	cfg := newSaveConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, cfg.level)
	if err != nil {
		return nil, err
	}

	return &Saver{cfg: cfg, codec: codec}, nil
}

// Bytes quantizes s and returns the compressed payload.
func (sv *Saver) Bytes(s *splat.GaussianSplat) ([]byte, error) {
	p, err := s.ToPacked(sv.cfg.coordinateSystem)
	if err != nil {
		return nil, err
	}

	data, err := p.EncodeWith(sv.codec)
	if err != nil {
		return nil, err
	}

	if sv.cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
		stats := compress.CompressionStats{
			Algorithm:      sv.codec.Type(),
			OriginalSize:   int64(p.PayloadSize()),
			CompressedSize: int64(len(data)),
		}
		sv.cfg.logger.Debug("spz: encoded splat",
			slog.Int("num_points", s.NumPoints),
			slog.String("compression", stats.Algorithm.String()),
			slog.Int64("original_bytes", stats.OriginalSize),
			slog.Int64("compressed_bytes", stats.CompressedSize),
			slog.Float64("ratio", stats.CompressionRatio()),
		)
	}

	return data, nil
}

// Save writes s to path.
//
// The file is written to a temporary sibling and renamed into place, so a failed or
// cancelled save leaves no partial file. ctx is checked before encoding and between
// written chunks.
func (sv *Saver) Save(ctx context.Context, s *splat.GaussianSplat, path string) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := sv.Bytes(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if sv.cfg.createDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.IO("mkdir "+dir, err)
		}
	}

	if err := writeFileAtomic(ctx, path, data); err != nil {
		return err
	}

	sv.cfg.logger.Debug("spz: saved file",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

func writeFileAtomic(ctx context.Context, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.IO("create "+path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return errs.IO("chmod "+tmp.Name(), err)
	}
	if err := copyContext(ctx, tmp, data); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return errs.IO("close "+tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.IO("rename "+path, err)
	}

	return nil
}

func copyContext(ctx context.Context, w io.Writer, data []byte) error {
	r := bytes.NewReader(data)
	for r.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.CopyN(w, r, writeChunk); err != nil && err != io.EOF {
			return errs.IO("write", err)
		}
	}

	return ctx.Err()
}

// Save writes s to path with default settings plus opts.
func Save(s *splat.GaussianSplat, path string, opts ...SaveOption) error {
	return SaveContext(context.Background(), s, path, opts...)
}

// SaveContext is Save with cancellation at the file I/O boundaries.
func SaveContext(ctx context.Context, s *splat.GaussianSplat, path string, opts ...SaveOption) error {
	sv, err := NewSaver(opts...)
	if err != nil {
		return err
	}

	return sv.Save(ctx, s, path)
}

// SaveBytes serializes s in memory.
func SaveBytes(s *splat.GaussianSplat, opts ...SaveOption) ([]byte, error) {
	sv, err := NewSaver(opts...)
	if err != nil {
		return nil, err
	}

	return sv.Bytes(s)
}

// SaveAsync runs SaveContext in a new goroutine. The channel receives exactly one
// error, nil on success, and is then closed.
func SaveAsync(ctx context.Context, s *splat.GaussianSplat, path string, opts ...SaveOption) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- SaveContext(ctx, s, path, opts...)
	}()

	return ch
}
