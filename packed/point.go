package packed

import (
	"fmt"

	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/quant"
)

// Gaussian holds the raw bytes of a single point across all arrays.
//
// Position uses the first 6 or 9 bytes and Rotation the first 3 or 4, depending on the
// encoding flags of the Gaussians it came from. SH coefficients past the stored degree
// hold quant.SHNeutral.
type Gaussian struct {
	Position [9]byte
	Rotation [4]byte
	Scale    [3]byte
	Color    [3]byte
	Alpha    byte
	SHR      [quant.MaxSHDim]byte
	SHG      [quant.MaxSHDim]byte
	SHB      [quant.MaxSHDim]byte
}

// Unpacked is a single point decoded to float32.
type Unpacked struct {
	Position [3]float32
	Rotation [4]float32
	Scale    [3]float32
	Color    [3]float32
	Alpha    float32
	SHR      [quant.MaxSHDim]float32
	SHG      [quant.MaxSHDim]float32
	SHB      [quant.MaxSHDim]float32
}

// At extracts the bytes of point i.
//
// Returns errs.ErrIndexOutOfBounds for i outside [0, NumPoints) and
// errs.ErrInconsistentSizes when the arrays do not match the point count.
func (g *Gaussians) At(i int) (Gaussian, error) {
	if i < 0 || i >= g.NumPoints {
		return Gaussian{}, fmt.Errorf("%w: %d", errs.ErrIndexOutOfBounds, i)
	}
	if err := g.Validate(); err != nil {
		return Gaussian{}, err
	}

	var p Gaussian

	pw := g.PositionWidth()
	copy(p.Position[:pw], g.Positions[i*pw:])

	rw := g.RotationWidth()
	copy(p.Rotation[:rw], g.Rotations[i*rw:])

	copy(p.Scale[:], g.Scales[i*ScaleWidth:])
	copy(p.Color[:], g.Colors[i*ColorWidth:])
	p.Alpha = g.Alphas[i]

	shDim := g.SHDim()
	base := i * shDim * SphericalHarmonicsPerDim
	for j := range quant.MaxSHDim {
		if j >= shDim {
			p.SHR[j], p.SHG[j], p.SHB[j] = quant.SHNeutral, quant.SHNeutral, quant.SHNeutral
			continue
		}
		k := base + j*SphericalHarmonicsPerDim
		p.SHR[j], p.SHG[j], p.SHB[j] = g.SphericalHarmonics[k], g.SphericalHarmonics[k+1], g.SphericalHarmonics[k+2]
	}

	return p, nil
}

// Unpack decodes point i and applies flips.
func (g *Gaussians) Unpack(i int, flips coord.AxisFlips) (Unpacked, error) {
	p, err := g.At(i)
	if err != nil {
		return Unpacked{}, err
	}

	return p.Unpack(g.UsesFloat16, g.UsesQuaternionSmallestThree, g.FractionalBits, flips)
}

// Unpack decodes the point with the given encoding parameters and applies flips.
//
// Returns errs.ErrInvalidFractionalBits when fixed24 positions cannot be scaled.
func (p *Gaussian) Unpack(usesFloat16, smallestThree bool, fractionalBits int, flips coord.AxisFlips) (Unpacked, error) {
	var u Unpacked

	if usesFloat16 {
		for a := range 3 {
			u.Position[a] = flips.Position[a] * quant.DecodeFloat16(p.Position[a*2:])
		}
	} else {
		scale, err := quant.PositionScale(fractionalBits)
		if err != nil {
			return Unpacked{}, err
		}
		inv := 1 / scale
		for a := range 3 {
			u.Position[a] = flips.Position[a] * quant.DecodeFixed24(p.Position[a*3:], inv)
		}
	}

	for a := range 3 {
		u.Scale[a] = quant.DecodeScale(p.Scale[a])
		u.Color[a] = quant.DecodeColor(p.Color[a])
	}

	if smallestThree {
		quant.UnpackQuaternionSmallestThree(u.Rotation[:], p.Rotation[:], flips.Rotation)
	} else {
		quant.UnpackQuaternionFirstThree(u.Rotation[:], p.Rotation[:3], flips.Rotation)
	}

	u.Alpha = quant.DecodeAlpha(p.Alpha)

	for j := range quant.MaxSHDim {
		f := flips.SphericalHarmonics[j]
		u.SHR[j] = f * quant.UnquantizeSH(p.SHR[j])
		u.SHG[j] = f * quant.UnquantizeSH(p.SHG[j])
		u.SHB[j] = f * quant.UnquantizeSH(p.SHB[j])
	}

	return u, nil
}
