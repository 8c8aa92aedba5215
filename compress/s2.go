package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

// S2Codec compresses payloads with the S2 stream format.
//
// The stream format (rather than raw blocks) starts with a magic chunk so Detect can
// recognize S2 files.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data into an S2 stream.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	w := s2.NewWriter(&buf, s2.WriterConcurrency(1))
	if err := w.EncodeBuffer(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 stream.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(s2.NewReader(bytes.NewReader(data))); err != nil {
		return nil, errs.IO("s2 decompress", err)
	}

	return out.Bytes(), nil
}
