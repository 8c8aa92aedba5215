package splat

import (
	"fmt"
	"math"

	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/packed"
	"github.com/arloliu/spz/quant"
	"github.com/arloliu/spz/section"
)

// FromPacked dequantizes p and converts the result from RUB into target.
//
// Each attribute is decoded in its own loop over all points. The returned splat owns
// its arrays; p is not modified.
//
// Returns:
//   - error: ErrInconsistentSizes if p's arrays do not match its header fields,
//     ErrInvalidFractionalBits for an unusable fixed-point scale
func FromPacked(p *packed.Gaussians, target coord.CoordinateSystem) (*GaussianSplat, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.NumPoints
	s := &GaussianSplat{
		NumPoints:          n,
		SHDegree:           p.SHDegree,
		Antialiased:        p.Antialiased,
		Positions:          make([]float32, n*3),
		Scales:             make([]float32, n*3),
		Rotations:          make([]float32, n*4),
		Alphas:             make([]float32, n),
		Colors:             make([]float32, n*3),
		SphericalHarmonics: make([]float32, len(p.SphericalHarmonics)),
	}

	if p.UsesFloat16 {
		for i := range s.Positions {
			s.Positions[i] = quant.DecodeFloat16(p.Positions[i*2:])
		}
	} else {
		scale, err := quant.PositionScale(p.FractionalBits)
		if err != nil {
			return nil, err
		}
		inv := 1 / scale
		for i := range s.Positions {
			s.Positions[i] = quant.DecodeFixed24(p.Positions[i*3:], inv)
		}
	}

	for i, b := range p.Scales {
		s.Scales[i] = quant.DecodeScale(b)
	}

	identity := coord.Identity.Rotation
	if p.UsesQuaternionSmallestThree {
		for i := range n {
			quant.UnpackQuaternionSmallestThree(s.Rotations[i*4:i*4+4], p.Rotations[i*4:i*4+4], identity)
		}
	} else {
		for i := range n {
			quant.UnpackQuaternionFirstThree(s.Rotations[i*4:i*4+4], p.Rotations[i*3:i*3+3], identity)
		}
	}

	for i, b := range p.Alphas {
		s.Alphas[i] = quant.DecodeAlpha(b)
	}
	for i, b := range p.Colors {
		s.Colors[i] = quant.DecodeColor(b)
	}
	for i, b := range p.SphericalHarmonics {
		s.SphericalHarmonics[i] = quant.UnquantizeSH(b)
	}

	s.ConvertCoordinates(coord.RUB, target)

	return s, nil
}

// ToPacked quantizes s into the latest packed layout, converting from source to RUB.
//
// Positions use section.DefaultFractionalBits (12) fractional bits and are clamped to the
// 24-bit range. The first nine SH values of each point keep 5 bits of precision, the rest 4.
// s is not modified.
func (s *GaussianSplat) ToPacked(source coord.CoordinateSystem) (*packed.Gaussians, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.NumPoints > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d points exceed the header range", errs.ErrInconsistentSizes, s.NumPoints)
	}

	p, err := packed.New(section.NewHeader(int32(s.NumPoints), uint8(s.SHDegree), section.DefaultFractionalBits, s.Antialiased)) //nolint:gosec
	if err != nil {
		return nil, err
	}

	flips := source.AxisFlipsTo(coord.RUB)
	n := s.NumPoints

	scale, err := quant.PositionScale(p.FractionalBits)
	if err != nil {
		return nil, err
	}
	for i, v := range s.Positions {
		quant.EncodeFixed24(p.Positions[i*3:], flips.Position[i%3]*v, scale)
	}

	for i, v := range s.Scales {
		p.Scales[i] = quant.EncodeScale(v)
	}

	for i := range n {
		r := s.Rotations[i*4 : i*4+4]
		quant.PackQuaternionSmallestThree(p.Rotations[i*4:i*4+4], [4]float32{r[0], r[1], r[2], r[3]}, flips.Rotation)
	}

	for i, v := range s.Alphas {
		p.Alphas[i] = quant.EncodeAlpha(v)
	}
	for i, v := range s.Colors {
		p.Colors[i] = quant.EncodeColor(v)
	}

	perPoint := s.SHDim() * 3
	for i := range n {
		base := i * perPoint
		for j := range perPoint {
			f := flips.SphericalHarmonics[j/3]
			p.SphericalHarmonics[base+j] = quant.QuantizeSH(f*s.SphericalHarmonics[base+j], quant.SHStep(j))
		}
	}

	return p, nil
}

// ConvertCoordinates re-expresses s, in place, from one axis convention in another.
//
// Positions and the x, y, z rotation components are multiplied by the axis signs, and
// every SH coefficient by its basis parity. Scales, colors and alphas do not depend on
// orientation and are left alone. A splat without points is not touched.
func (s *GaussianSplat) ConvertCoordinates(from, to coord.CoordinateSystem) {
	if s.NumPoints <= 0 {
		return
	}

	flips := from.AxisFlipsTo(to)
	if flips.IsIdentity() {
		return
	}

	for i := 0; i+2 < len(s.Positions); i += 3 {
		s.Positions[i] *= flips.Position[0]
		s.Positions[i+1] *= flips.Position[1]
		s.Positions[i+2] *= flips.Position[2]
	}

	for i := 0; i+3 < len(s.Rotations); i += 4 {
		s.Rotations[i] *= flips.Rotation[0]
		s.Rotations[i+1] *= flips.Rotation[1]
		s.Rotations[i+2] *= flips.Rotation[2]
	}

	coeffs := len(s.SphericalHarmonics) / 3
	perPoint := min(coeffs/s.NumPoints, quant.MaxSHDim)
	if perPoint == 0 {
		return
	}

	idx := 0
	for range s.NumPoints {
		for j := range perPoint {
			f := flips.SphericalHarmonics[j]
			s.SphericalHarmonics[idx] *= f
			s.SphericalHarmonics[idx+1] *= f
			s.SphericalHarmonics[idx+2] *= f
			idx += 3
		}
	}
}
