package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

// lz4WriterPool pools default-level lz4 frame writers.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

// LZ4Codec compresses payloads with the LZ4 frame format.
type LZ4Codec struct {
	level lz4.CompressionLevel
	fast  bool
}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
//
// Parameters:
//   - level: 0 or DefaultLevel for the fast compressor, 1-9 for LZ4HC levels
//
// Returns:
//   - LZ4Codec: New LZ4 codec instance
func NewLZ4Codec(level int) LZ4Codec {
	if level <= 0 {
		return LZ4Codec{fast: true}
	}
	if level > 9 {
		level = 9
	}

	return LZ4Codec{level: lz4.CompressionLevel(1 << (8 + level))}
}

// Type returns format.CompressionLZ4.
func (c LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into one LZ4 frame.
//
// Uses a pooled lz4.Writer when running at the fast level.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(lz4.CompressBlockBound(len(data)) + 32)

	var w *lz4.Writer
	if c.fast {
		w, _ = lz4WriterPool.Get().(*lz4.Writer)
		defer lz4WriterPool.Put(w)
		w.Reset(&buf)
	} else {
		w = lz4.NewWriter(&buf)
		if err := w.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
			return nil, fmt.Errorf("lz4 writer: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var out bytes.Buffer
	out.Grow(len(data) * 4)

	if _, err := out.ReadFrom(lz4.NewReader(bytes.NewReader(data))); err != nil {
		return nil, errs.IO("lz4 decompress", err)
	}

	return out.Bytes(), nil
}
