package compress

import "github.com/arloliu/spz/format"

// NoOpCodec passes payloads through unchanged.
//
// An uncompressed spz payload begins with the header magic, so Detect can still
// identify it. Useful for debugging and for inspecting payloads with a hex viewer.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a new no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns a copy of data.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	return append([]byte(nil), data...), nil
}

// Decompress returns data as is. The caller owns the returned slice only as far as it owns data.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
