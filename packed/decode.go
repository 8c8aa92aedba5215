package packed

import (
	"fmt"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/section"
)

// Decode decompresses data and parses the payload.
//
// The container compression is detected from the leading bytes: standard files are gzip,
// and the alternative codecs of the compress package are accepted as well.
//
// Returns:
//   - *Gaussians: Parsed splat, never partially filled
//   - error: ErrDataIsEmpty, ErrUnknownCompression, a decompression error, or any Parse error
func Decode(data []byte) (*Gaussians, error) {
	if len(data) == 0 {
		return nil, errs.ErrDataIsEmpty
	}

	payload, _, err := compress.DecompressAuto(data)
	if err != nil {
		return nil, err
	}

	return Parse(payload)
}

// DecodeWith decompresses data with the given decompressor and parses the payload.
func DecodeWith(data []byte, decompressor compress.Decompressor) (*Gaussians, error) {
	if len(data) == 0 {
		return nil, errs.ErrDataIsEmpty
	}

	payload, err := decompressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	return Parse(payload)
}

// Parse reads an uncompressed payload: the header followed by the attribute arrays.
//
// The arrays are copied, so payload may be reused or unmapped afterwards. Bytes past the
// last array are ignored.
//
// Returns:
//   - error: ErrDataIsEmpty, ErrInvalidHeaderSize, ErrInvalidMagicNumber,
//     ErrUnsupportedVersion, ErrUnsupportedSphericalHarmonicsDegree, ErrInconsistentSizes
//     or ErrTruncatedPayload
func Parse(payload []byte) (*Gaussians, error) {
	if len(payload) == 0 {
		return nil, errs.ErrDataIsEmpty
	}

	h, err := section.ParseHeader(payload)
	if err != nil {
		return nil, err
	}
	if err := checkDecodable(h); err != nil {
		return nil, err
	}

	g := &Gaussians{
		NumPoints:                   int(h.NumPoints),
		SHDegree:                    int(h.SphericalHarmonicsDegree),
		FractionalBits:              int(h.FractionalBits),
		Antialiased:                 h.IsAntialiased(),
		UsesFloat16:                 h.Version.UsesFloat16(),
		UsesQuaternionSmallestThree: h.Version.UsesQuaternionSmallestThree(),
	}

	body := payload[section.HeaderSize:]
	l, ok := g.layout()
	if !ok {
		return nil, fmt.Errorf("%w: %d points exceed the addressable size, have %d bytes", errs.ErrTruncatedPayload, g.NumPoints, len(body))
	}
	if len(body) < l.total() {
		return nil, fmt.Errorf("%w: %s", errs.ErrTruncatedPayload, describeShortfall(l, len(body)))
	}

	buf := g.allocate(l)
	copy(buf, body)

	return g, nil
}

// describeShortfall names the first array that does not fit in n body bytes.
func describeShortfall(l layout, n int) string {
	fields := []struct {
		name string
		size int
	}{
		{"positions", l.positions},
		{"alphas", l.alphas},
		{"colors", l.colors},
		{"scales", l.scales},
		{"rotations", l.rotations},
		{"spherical harmonics", l.sh},
	}

	off := 0
	for _, f := range fields {
		if off+f.size > n {
			return fmt.Sprintf("%s need %d bytes at offset %d, have %d", f.name, f.size, off, max(0, n-off))
		}
		off += f.size
	}

	return fmt.Sprintf("need %d bytes, have %d", l.total(), n)
}
