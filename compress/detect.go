package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic   = []byte{0xff, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	// snappy framed streams are decodable by the s2 reader too.
	snappyMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
	// little-endian 0x5053474e, the spz header magic.
	rawMagic = []byte{'N', 'G', 'S', 'P'}
)

// sniffLen is the number of leading bytes Detect needs to recognize every format.
const sniffLen = 10

// Detect identifies the container compression of data from its leading magic bytes.
//
// Returns an error matching both errs.ErrUnknownCompression and errs.ErrIO when no known
// signature matches.
func Detect(data []byte) (format.CompressionType, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip, nil
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd, nil
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4, nil
	case bytes.HasPrefix(data, s2Magic), bytes.HasPrefix(data, snappyMagic):
		return format.CompressionS2, nil
	case bytes.HasPrefix(data, rawMagic):
		return format.CompressionNone, nil
	}

	n := min(len(data), 4)

	return 0, errs.IO("detect compression", fmt.Errorf("%w: leading bytes % x", errs.ErrUnknownCompression, data[:n]))
}

// DetectReader peeks at br without consuming input and identifies its compression.
func DetectReader(br *bufio.Reader) (format.CompressionType, error) {
	head, err := br.Peek(sniffLen)
	if err != nil && len(head) == 0 {
		if err == io.EOF {
			return 0, errs.ErrDataIsEmpty
		}

		return 0, errs.IO("peek", err)
	}

	return Detect(head)
}

// NewReader returns a streaming decompressor over r for the given compression type.
//
// Closing the returned reader releases decoder resources but does not close r.
func NewReader(r io.Reader, compressionType format.CompressionType) (io.ReadCloser, error) {
	switch compressionType {
	case format.CompressionNone:
		return io.NopCloser(r), nil
	case format.CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errs.IO("gzip reader", err)
		}

		return zr, nil
	case format.CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errs.IO("zstd reader", err)
		}

		return zr.IOReadCloser(), nil
	case format.CompressionS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case format.CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
	}
}

// NewAutoReader sniffs the compression of r and returns a matching streaming decompressor.
func NewAutoReader(r io.Reader) (io.ReadCloser, format.CompressionType, error) {
	br := bufio.NewReaderSize(r, 4096)

	compressionType, err := DetectReader(br)
	if err != nil {
		return nil, 0, err
	}

	rc, err := NewReader(br, compressionType)
	if err != nil {
		return nil, 0, err
	}

	return rc, compressionType, nil
}

// DecompressAuto detects the compression of data and decompresses it in one call.
func DecompressAuto(data []byte) ([]byte, format.CompressionType, error) {
	if len(data) == 0 {
		return nil, 0, errs.ErrDataIsEmpty
	}

	compressionType, err := Detect(data)
	if err != nil {
		return nil, 0, err
	}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, 0, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, compressionType, err
	}

	return out, compressionType, nil
}
