package splat

import (
	"fmt"
	"slices"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/quant"
	"github.com/arloliu/spz/section"
)

// GaussianSplat is a set of Gaussians with full-precision attributes.
//
// The arrays are exported for direct access. CheckSizes reports whether their lengths
// agree with NumPoints and SHDegree; nothing repairs them silently.
type GaussianSplat struct {
	NumPoints   int
	SHDegree    int
	Antialiased bool

	Positions          []float32
	Scales             []float32
	Rotations          []float32
	Alphas             []float32
	Colors             []float32
	SphericalHarmonics []float32
}

// New allocates a splat with zeroed arrays for numPoints points.
//
// Rotations are initialized to the identity quaternion (0, 0, 0, 1).
func New(numPoints, shDegree int, antialiased bool) (*GaussianSplat, error) {
	if numPoints < 0 {
		return nil, fmt.Errorf("%w: negative point count %d", errs.ErrInconsistentSizes, numPoints)
	}
	if shDegree < 0 || shDegree > section.MaxSphericalHarmonicsDegree {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedSphericalHarmonicsDegree, shDegree)
	}

	s := &GaussianSplat{
		NumPoints:          numPoints,
		SHDegree:           shDegree,
		Antialiased:        antialiased,
		Positions:          make([]float32, numPoints*3),
		Scales:             make([]float32, numPoints*3),
		Rotations:          make([]float32, numPoints*4),
		Alphas:             make([]float32, numPoints),
		Colors:             make([]float32, numPoints*3),
		SphericalHarmonics: make([]float32, numPoints*quant.DimForDegree(shDegree)*3),
	}
	for i := 3; i < len(s.Rotations); i += 4 {
		s.Rotations[i] = 1
	}

	return s, nil
}

// SHDim returns the number of SH coefficients per color channel.
func (s *GaussianSplat) SHDim() int {
	return quant.DimForDegree(s.SHDegree)
}

// CheckSizes reports whether every array holds exactly NumPoints entries.
//
// A negative NumPoints or a degree outside 0..3 is never consistent.
func (s *GaussianSplat) CheckSizes() bool {
	if s.NumPoints < 0 || s.SHDegree < 0 || s.SHDegree > section.MaxSphericalHarmonicsDegree {
		return false
	}
	n := s.NumPoints

	return len(s.Positions) == n*3 &&
		len(s.Scales) == n*3 &&
		len(s.Rotations) == n*4 &&
		len(s.Alphas) == n &&
		len(s.Colors) == n*3 &&
		len(s.SphericalHarmonics) == n*s.SHDim()*3
}

// Validate returns errs.ErrInconsistentSizes when CheckSizes fails.
func (s *GaussianSplat) Validate() error {
	if !s.CheckSizes() {
		return fmt.Errorf("%w: %d points of degree %d do not match the attribute arrays",
			errs.ErrInconsistentSizes, s.NumPoints, s.SHDegree)
	}

	return nil
}

// Clone returns a deep copy of s.
func (s *GaussianSplat) Clone() *GaussianSplat {
	return &GaussianSplat{
		NumPoints:          s.NumPoints,
		SHDegree:           s.SHDegree,
		Antialiased:        s.Antialiased,
		Positions:          slices.Clone(s.Positions),
		Scales:             slices.Clone(s.Scales),
		Rotations:          slices.Clone(s.Rotations),
		Alphas:             slices.Clone(s.Alphas),
		Colors:             slices.Clone(s.Colors),
		SphericalHarmonics: slices.Clone(s.SphericalHarmonics),
	}
}
