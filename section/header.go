package section

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/spz/endian"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
	"github.com/arloliu/spz/internal/pool"
)

// Header represents the fixed-size header at the start of every spz payload.
type Header struct {
	// Magic must equal MagicValue.
	Magic int32 // byte offset 0-3
	// Version selects the position and rotation encodings of the payload.
	Version format.Version // byte offset 4-7
	// NumPoints is the number of gaussians in the payload.
	NumPoints int32 // byte offset 8-11
	// SphericalHarmonicsDegree is between 0 and 3 inclusive.
	SphericalHarmonicsDegree uint8 // byte offset 12
	// FractionalBits is the number of fractional bits of the fixed24 position encoding.
	FractionalBits uint8 // byte offset 13
	// Flags is a bit field, see Flags.
	Flags Flags // byte offset 14
	// Reserved must be 0.
	Reserved uint8 // byte offset 15
}

// NewHeader creates a header for the latest version with the given point layout.
func NewHeader(numPoints int32, shDegree uint8, fractionalBits uint8, antialiased bool) Header {
	h := Header{
		Magic:                    MagicValue,
		Version:                  format.LatestVersion,
		NumPoints:                numPoints,
		SphericalHarmonicsDegree: shDegree,
		FractionalBits:           fractionalBits,
	}
	h.Flags.SetAntialiased(antialiased)

	return h
}

// Parse parses the header from a byte slice.
//
// Only the first HeaderSize bytes are read. Parse does not imply validity, see Validate.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is shorter than HeaderSize
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = int32(engine.Uint32(data[offsetMagic:offsetVersion]))                //nolint:gosec
	h.Version = format.Version(engine.Uint32(data[offsetVersion:offsetNumPoints])) //nolint:gosec
	h.NumPoints = int32(engine.Uint32(data[offsetNumPoints:offsetSHDegree]))       //nolint:gosec
	h.SphericalHarmonicsDegree = data[offsetSHDegree]
	h.FractionalBits = data[offsetFractionalBits]
	h.Flags = Flags(data[offsetFlags])
	h.Reserved = data[offsetReserved]

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice. It is the exact inverse of Parse.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to b.
func (h *Header) AppendTo(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	b = engine.AppendUint32(b, uint32(h.Magic))     //nolint:gosec
	b = engine.AppendUint32(b, uint32(h.Version))   //nolint:gosec
	b = engine.AppendUint32(b, uint32(h.NumPoints)) //nolint:gosec

	return append(b, h.SphericalHarmonicsDegree, h.FractionalBits, byte(h.Flags), h.Reserved)
}

// WriteTo writes the serialized header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	hb := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(hb)

	hb.B = h.AppendTo(hb.B)
	n, err := w.Write(hb.B)
	if err != nil {
		return int64(n), errs.IO("write header", err)
	}

	return int64(n), nil
}

// Validate checks the header against the format rules.
//
// Returns:
//   - error: nil for a valid header, otherwise ErrHeaderInvalid joined with the
//     specific reason (ErrInvalidMagicNumber, ErrUnsupportedVersion, ...)
func (h *Header) Validate() error {
	var reason error

	switch {
	case h.Magic != MagicValue:
		reason = fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagicNumber, uint32(h.Magic)) //nolint:gosec
	case h.Version != format.Version2 && h.Version != format.Version3:
		reason = fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, int32(h.Version))
	case h.SphericalHarmonicsDegree > MaxSphericalHarmonicsDegree:
		reason = fmt.Errorf("%w: %d", errs.ErrUnsupportedSphericalHarmonicsDegree, h.SphericalHarmonicsDegree)
	case h.NumPoints < 0:
		reason = fmt.Errorf("%w: negative point count %d", errs.ErrInconsistentSizes, h.NumPoints)
	case h.Flags.HasUnknownBits():
		reason = fmt.Errorf("unknown flag bits 0x%02x", uint8(h.Flags))
	case h.Reserved != 0:
		reason = fmt.Errorf("reserved byte is 0x%02x", h.Reserved)
	default:
		return nil
	}

	return fmt.Errorf("%w: %w", errs.ErrHeaderInvalid, reason)
}

// IsValid returns whether the header passes Validate.
func (h *Header) IsValid() bool {
	return h.Validate() == nil
}

// IsAntialiased returns whether the antialiased flag is set.
func (h *Header) IsAntialiased() bool {
	return h.Flags.IsAntialiased()
}

// Summary returns a human-readable multi-line report of the header.
func (h *Header) Summary() string {
	var sb strings.Builder

	sb.WriteString("Header:\n")
	fmt.Fprintf(&sb, "\tVersion:\t\t\t%d\n", int32(h.Version))
	fmt.Fprintf(&sb, "\tNumber of points:\t\t%d\n", h.NumPoints)
	fmt.Fprintf(&sb, "\tSpherical harmonics degree:\t%d\n", h.SphericalHarmonicsDegree)
	fmt.Fprintf(&sb, "\tFractional bits:\t\t%d\n", h.FractionalBits)
	fmt.Fprintf(&sb, "\tAntialiased:\t\t\t%t\n", h.IsAntialiased())

	return sb.String()
}

func (h Header) String() string {
	return fmt.Sprintf("Header={version=%d, num_points=%d, sh_degree=%d, fractional_bits=%d, antialiased=%t}",
		int32(h.Version), h.NumPoints, h.SphericalHarmonicsDegree, h.FractionalBits, h.IsAntialiased())
}

type headerJSON struct {
	Magic                    int32 `json:"magic"`
	Version                  int32 `json:"version"`
	NumPoints                int32 `json:"num_points"`
	SphericalHarmonicsDegree uint8 `json:"spherical_harmonics_degree"`
	FractionalBits           uint8 `json:"fractional_bits"`
	Flags                    uint8 `json:"flags"`
	Antialiased              bool  `json:"antialiased"`
	Reserved                 uint8 `json:"reserved"`
	Valid                    bool  `json:"valid"`
}

// MarshalJSON renders the header fields plus derived antialiased/valid booleans.
func (h Header) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(headerJSON{
		Magic:                    h.Magic,
		Version:                  int32(h.Version),
		NumPoints:                h.NumPoints,
		SphericalHarmonicsDegree: h.SphericalHarmonicsDegree,
		FractionalBits:           h.FractionalBits,
		Flags:                    uint8(h.Flags),
		Antialiased:              h.IsAntialiased(),
		Reserved:                 h.Reserved,
		Valid:                    h.IsValid(),
	})
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 16 bytes)
//
// Returns:
//   - Header: Parsed header struct, not validated
//   - error: ErrInvalidHeaderSize
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

// ReadValidatedHeader parses and validates a Header from a byte slice.
//
// Returns:
//   - Header: Parsed and validated header
//   - error: ErrInvalidHeaderSize, or ErrHeaderInvalid joined with the reason
func ReadValidatedHeader(data []byte) (Header, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, err
	}

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// ReadHeader consumes exactly HeaderSize bytes from r and parses them without validation.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, errs.IO("read header", err)
	}

	return ParseHeader(buf[:])
}
