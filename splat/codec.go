package splat

import (
	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/packed"
)

// Decode decompresses and dequantizes a serialized splat into target's convention.
func Decode(data []byte, target coord.CoordinateSystem) (*GaussianSplat, error) {
	p, err := packed.Decode(data)
	if err != nil {
		return nil, err
	}

	return FromPacked(p, target)
}

// DecodeWith is like Decode but uses the given decompressor instead of detecting one.
func DecodeWith(data []byte, target coord.CoordinateSystem, decompressor compress.Decompressor) (*GaussianSplat, error) {
	p, err := packed.DecodeWith(data, decompressor)
	if err != nil {
		return nil, err
	}

	return FromPacked(p, target)
}

// Encode quantizes s from source into RUB and gzip-compresses it into a standard .spz file.
func (s *GaussianSplat) Encode(source coord.CoordinateSystem) ([]byte, error) {
	return s.EncodeWith(source, compress.NewGzipCodec(compress.DefaultLevel))
}

// EncodeWith is like Encode but compresses with compressor.
func (s *GaussianSplat) EncodeWith(source coord.CoordinateSystem, compressor compress.Compressor) ([]byte, error) {
	p, err := s.ToPacked(source)
	if err != nil {
		return nil, err
	}

	return p.EncodeWith(compressor)
}
