// Package source provides the raw bytes of a serialized splat under a chosen read strategy.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
	"github.com/arloliu/spz/internal/mmap"
	"github.com/arloliu/spz/internal/pool"
)

// chunkSize bounds how much is read between cancellation checks.
const chunkSize = 1 << 20

// Source holds the bytes of one file until Close.
//
// The slice returned by Bytes must not be used after Close.
type Source interface {
	Bytes() []byte
	Strategy() format.ReadStrategy
	Close() error
}

// Open returns a Source for path using strategy. ReadAuto resolves per platform.
//
// ctx is checked before the file is opened and between buffered read chunks. All
// filesystem failures are wrapped with errs.IO.
func Open(ctx context.Context, path string, strategy format.ReadStrategy) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strategy.Resolve() {
	case format.ReadMmap:
		return Mmap(path)
	case format.ReadBuffered:
		return Buffered(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidReadStrategy, strategy)
	}
}

type mmapSource struct {
	file *mmap.File
}

// Mmap maps path read-only.
func Mmap(path string) (Source, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, errs.IO("mmap "+path, err)
	}

	return &mmapSource{file: f}, nil
}

func (s *mmapSource) Bytes() []byte                 { return s.file.Bytes() }
func (s *mmapSource) Strategy() format.ReadStrategy { return format.ReadMmap }

func (s *mmapSource) Close() error {
	return errs.IO("munmap", s.file.Close())
}

type bufferedSource struct {
	buf *pool.ByteBuffer
}

// Buffered reads path fully into a pooled buffer.
func Buffered(ctx context.Context, path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open "+path, err)
	}
	defer f.Close()

	buf := pool.GetPayloadBuffer()
	if fi, err := f.Stat(); err == nil && fi.Size() > 0 {
		// one spare byte so the final read observes EOF without growing
		buf.Grow(int(fi.Size()) + 1)
	}

	if err := readAll(ctx, f, buf); err != nil {
		pool.PutPayloadBuffer(buf)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		return nil, errs.IO("read "+path, err)
	}

	return &bufferedSource{buf: buf}, nil
}

func readAll(ctx context.Context, r io.Reader, buf *pool.ByteBuffer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if buf.Len() == buf.Cap() {
			buf.Grow(chunkSize)
		}
		free := buf.B[buf.Len():buf.Cap()]
		if len(free) > chunkSize {
			free = free[:chunkSize]
		}

		n, err := r.Read(free)
		buf.B = buf.B[:buf.Len()+n]
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *bufferedSource) Bytes() []byte {
	if s.buf == nil {
		return nil
	}

	return s.buf.Bytes()
}

func (s *bufferedSource) Strategy() format.ReadStrategy { return format.ReadBuffered }

func (s *bufferedSource) Close() error {
	if s.buf != nil {
		pool.PutPayloadBuffer(s.buf)
		s.buf = nil
	}

	return nil
}

type bytesSource []byte

// Bytes wraps an in-memory payload. Close is a no-op.
func Bytes(data []byte) Source {
	return bytesSource(data)
}

func (s bytesSource) Bytes() []byte                 { return s }
func (s bytesSource) Strategy() format.ReadStrategy { return format.ReadBuffered }
func (s bytesSource) Close() error                  { return nil }
