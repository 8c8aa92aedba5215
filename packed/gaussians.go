package packed

import (
	"fmt"
	"math"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
	"github.com/arloliu/spz/quant"
	"github.com/arloliu/spz/section"
)

// Per-point widths of the fixed-size arrays.
const (
	PositionWidthFixed24     = 9
	PositionWidthFloat16     = 6
	RotationWidthSmallest    = 4
	RotationWidthFirstThree  = 3
	AlphaWidth               = 1
	ColorWidth               = 3
	ScaleWidth               = 3
	SphericalHarmonicsPerDim = 3
)

// maxSHDim is the SH dimension of the highest supported degree.
var maxSHDim = quant.DimForDegree(section.MaxSphericalHarmonicsDegree)

// Gaussians is the packed, structure-of-arrays form of a splat.
type Gaussians struct {
	NumPoints      int
	SHDegree       int
	FractionalBits int
	Antialiased    bool

	// UsesFloat16 selects 6-byte float16 positions (version 1) instead of 9-byte fixed24.
	UsesFloat16 bool
	// UsesQuaternionSmallestThree selects 4-byte smallest-three rotations (version 3)
	// instead of the 3-byte first-three encoding.
	UsesQuaternionSmallestThree bool

	Positions          []byte
	Scales             []byte
	Rotations          []byte
	Alphas             []byte
	Colors             []byte
	SphericalHarmonics []byte
}

// layout holds the byte length of every array for a point count.
type layout struct {
	positions, alphas, colors, scales, rotations, sh int
}

func (l layout) total() int {
	return l.positions + l.alphas + l.colors + l.scales + l.rotations + l.sh
}

// newLayout computes the array lengths in int64 so that large point counts cannot wrap.
// It reports false for a negative count, a count above math.MaxInt32, an SH dimension past
// degree 3, or a payload that does not fit in an int on this platform.
func newLayout(numPoints, shDim int, usesFloat16, smallestThree bool) (layout, bool) {
	if numPoints < 0 || numPoints > math.MaxInt32 || shDim < 0 || shDim > maxSHDim {
		return layout{}, false
	}

	posWidth := PositionWidthFixed24
	if usesFloat16 {
		posWidth = PositionWidthFloat16
	}
	rotWidth := RotationWidthFirstThree
	if smallestThree {
		rotWidth = RotationWidthSmallest
	}

	n := int64(numPoints)
	perPoint := int64(posWidth + AlphaWidth + ColorWidth + ScaleWidth + rotWidth + shDim*SphericalHarmonicsPerDim)
	if n*perPoint > math.MaxInt {
		return layout{}, false
	}

	return layout{
		positions: int(n * int64(posWidth)),
		alphas:    int(n * AlphaWidth),
		colors:    int(n * ColorWidth),
		scales:    int(n * ScaleWidth),
		rotations: int(n * int64(rotWidth)),
		sh:        int(n * int64(shDim) * SphericalHarmonicsPerDim),
	}, true
}

// New allocates zeroed arrays for the point layout described by h.
//
// h is checked for the magic value, a version between 1 and 3, a spherical harmonics
// degree of at most 3 and a non-negative point count. Flags and reserved bits are not
// inspected.
func New(h section.Header) (*Gaussians, error) {
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
	l, ok := g.layout()
	if !ok {
		return nil, fmt.Errorf("%w: %d points exceed the addressable size", errs.ErrInconsistentSizes, g.NumPoints)
	}
	g.allocate(l)

	return g, nil
}

func checkDecodable(h section.Header) error {
	switch {
	case h.Magic != section.MagicValue:
		return fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagicNumber, uint32(h.Magic)) //nolint:gosec
	case h.Version < format.Version1 || h.Version > format.Version3:
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, int32(h.Version))
	case h.SphericalHarmonicsDegree > section.MaxSphericalHarmonicsDegree:
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedSphericalHarmonicsDegree, h.SphericalHarmonicsDegree)
	case h.NumPoints < 0:
		return fmt.Errorf("%w: negative point count %d", errs.ErrInconsistentSizes, h.NumPoints)
	}

	return nil
}

// allocate backs every array with one contiguous allocation.
func (g *Gaussians) allocate(l layout) []byte {
	buf := make([]byte, l.total())

	off := 0
	next := func(n int) []byte {
		s := buf[off : off+n : off+n]
		off += n

		return s
	}

	// on-disk order, so buf mirrors the payload body
	g.Positions = next(l.positions)
	g.Alphas = next(l.alphas)
	g.Colors = next(l.colors)
	g.Scales = next(l.scales)
	g.Rotations = next(l.rotations)
	g.SphericalHarmonics = next(l.sh)

	return buf
}

func (g *Gaussians) layout() (layout, bool) {
	return newLayout(g.NumPoints, g.SHDim(), g.UsesFloat16, g.UsesQuaternionSmallestThree)
}

// SHDim returns the number of SH coefficients per color channel.
func (g *Gaussians) SHDim() int {
	return quant.DimForDegree(g.SHDegree)
}

// PositionWidth returns the number of position bytes per point.
func (g *Gaussians) PositionWidth() int {
	if g.UsesFloat16 {
		return PositionWidthFloat16
	}

	return PositionWidthFixed24
}

// RotationWidth returns the number of rotation bytes per point.
func (g *Gaussians) RotationWidth() int {
	if g.UsesQuaternionSmallestThree {
		return RotationWidthSmallest
	}

	return RotationWidthFirstThree
}

// Version returns the format version implied by the encoding flags.
func (g *Gaussians) Version() format.Version {
	switch {
	case g.UsesFloat16:
		return format.Version1
	case g.UsesQuaternionSmallestThree:
		return format.Version3
	default:
		return format.Version2
	}
}

// Header builds the serialized header describing g.
func (g *Gaussians) Header() (section.Header, error) {
	if g.NumPoints < 0 || g.NumPoints > math.MaxInt32 {
		return section.Header{}, fmt.Errorf("%w: point count %d", errs.ErrInconsistentSizes, g.NumPoints)
	}
	if g.SHDegree < 0 || g.SHDegree > section.MaxSphericalHarmonicsDegree {
		return section.Header{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedSphericalHarmonicsDegree, g.SHDegree)
	}
	if g.FractionalBits < 0 || g.FractionalBits > math.MaxUint8 {
		return section.Header{}, fmt.Errorf("%w: %d", errs.ErrInvalidFractionalBits, g.FractionalBits)
	}

	h := section.NewHeader(int32(g.NumPoints), uint8(g.SHDegree), uint8(g.FractionalBits), g.Antialiased) //nolint:gosec
	h.Version = g.Version()

	return h, nil
}

// CheckSizes reports whether every array holds exactly numPoints entries for the given
// SH dimension and position width. The rotation width follows UsesQuaternionSmallestThree.
func (g *Gaussians) CheckSizes(numPoints, shDim int, usesFloat16 bool) bool {
	want, ok := newLayout(numPoints, shDim, usesFloat16, g.UsesQuaternionSmallestThree)
	if !ok {
		return false
	}

	return len(g.Positions) == want.positions &&
		len(g.Alphas) == want.alphas &&
		len(g.Colors) == want.colors &&
		len(g.Scales) == want.scales &&
		len(g.Rotations) == want.rotations &&
		len(g.SphericalHarmonics) == want.sh
}

// Validate checks the arrays against the scalar fields.
//
// Returns errs.ErrInconsistentSizes on any length mismatch or out of range degree.
func (g *Gaussians) Validate() error {
	if g.SHDegree < 0 || g.SHDegree > section.MaxSphericalHarmonicsDegree {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedSphericalHarmonicsDegree, g.SHDegree)
	}
	if !g.CheckSizes(g.NumPoints, g.SHDim(), g.UsesFloat16) {
		return fmt.Errorf("%w: arrays do not match %d points of degree %d", errs.ErrInconsistentSizes, g.NumPoints, g.SHDegree)
	}

	return nil
}

// PayloadSize returns the uncompressed size of the serialized form, header included,
// or 0 when the point count is negative or too large to address.
func (g *Gaussians) PayloadSize() int {
	l, ok := g.layout()
	if !ok || l.total() > math.MaxInt-section.HeaderSize {
		return 0
	}

	return section.HeaderSize + l.total()
}
