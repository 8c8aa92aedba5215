package compress

import (
	"fmt"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

// Compressor compresses a complete serialized spz payload (header plus packed arrays).
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal encoders may be pooled and reused
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching Compressor.
//
// Example:
//
//	codec := compress.NewGzipCodec(compress.DefaultLevel)
//	payload, err := codec.Decompress(fileBytes)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: all Decompressor implementations in this package are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or truncated
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the compression type implemented by the codec.
	Type() format.CompressionType
}

// DefaultLevel selects each algorithm's default compression level.
const DefaultLevel = -1

// CompressionStats describes a single compression operation.
//
// The saver logs these at debug level.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the given type and level.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2 or LZ4)
//   - level: Algorithm specific level, DefaultLevel for the default
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrUnknownCompression for an invalid type
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(level), nil
	case format.CompressionZstd:
		return NewZstdCodec(level), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(level), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(DefaultLevel),
	format.CompressionZstd: NewZstdCodec(DefaultLevel),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(DefaultLevel),
}

// GetCodec retrieves a built-in Codec with default level for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
}
