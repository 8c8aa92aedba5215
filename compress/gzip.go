package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

// gzipReaderPool pools gzip readers; gzip.Reader.Reset re-arms a reader for new input.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// gzipWriterPool pools default-level gzip writers.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// GzipCodec implements the standard spz container compression.
type GzipCodec struct {
	level int
}

var _ Codec = GzipCodec{}

// NewGzipCodec creates a gzip codec. Levels outside gzip's valid range fall back to the default.
func NewGzipCodec(level int) GzipCodec {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}

	return GzipCodec{level: level}
}

// Type returns format.CompressionGzip.
func (c GzipCodec) Type() format.CompressionType {
	return format.CompressionGzip
}

// Compress wraps data in a single gzip member.
func (c GzipCodec) Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data)/4 + 64)

	var w *gzip.Writer
	if c.level == gzip.DefaultCompression {
		w, _ = gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(w)
		w.Reset(&buf)
	} else {
		var err error
		if w, err = gzip.NewWriterLevel(&buf, c.level); err != nil {
			return nil, fmt.Errorf("gzip writer: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates every gzip member in data.
func (c GzipCodec) Decompress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	r, _ := gzipReaderPool.Get().(*gzip.Reader)
	defer gzipReaderPool.Put(r)

	if err := r.Reset(bytes.NewReader(data)); err != nil {
		return nil, errs.IO("gzip decompress", err)
	}

	var out bytes.Buffer
	out.Grow(len(data) * 4)

	if _, err := out.ReadFrom(r); err != nil {
		return nil, errs.IO("gzip decompress", err)
	}

	return out.Bytes(), nil
}
