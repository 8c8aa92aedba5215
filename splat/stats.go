package splat

import (
	"fmt"
	"math"
	"slices"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/internal/hash"
	"github.com/arloliu/spz/internal/pool"
)

// DefaultMedianVolume is returned by MedianVolume when no meaningful volume exists.
const DefaultMedianVolume float32 = 0.01

// ln of the smallest positive normal float32
var minLogVolume = float32(math.Log(0x1p-126))

// BoundingBox is an axis-aligned box around the splat positions.
type BoundingBox struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// Size returns the extent along x, y and z.
func (b BoundingBox) Size() [3]float32 {
	return [3]float32{b.MaxX - b.MinX, b.MaxY - b.MinY, b.MaxZ - b.MinZ}
}

// Center returns the midpoint along x, y and z.
func (b BoundingBox) Center() [3]float32 {
	return [3]float32{(b.MaxX + b.MinX) / 2, (b.MaxY + b.MinY) / 2, (b.MaxZ + b.MinZ) / 2}
}

// MedianVolume estimates the typical ellipsoid volume, (4/3)·π·e^m, where m is the median
// over points of the summed log-scales.
//
// The median is the element at index len/2 of the sorted finite sums. It returns
// DefaultMedianVolume when there are no scales, no finite sums, or the median underflows.
func (s *GaussianSplat) MedianVolume() float32 {
	points := len(s.Scales) / 3
	if points == 0 {
		return DefaultMedianVolume
	}

	sums, cleanup := pool.GetFloat32Slice(points)
	defer cleanup()

	sums = sums[:0]
	for i := 0; i+2 < len(s.Scales); i += 3 {
		v := s.Scales[i] + s.Scales[i+1] + s.Scales[i+2]
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			continue
		}
		sums = append(sums, v)
	}
	if len(sums) == 0 {
		return DefaultMedianVolume
	}

	slices.Sort(sums)
	median := sums[len(sums)/2]
	if median <= minLogVolume {
		return DefaultMedianVolume
	}

	return float32(math.Pi*4/3) * float32(math.Exp(float64(median)))
}

// BBox returns the bounding box of the positions, or the zero box for an empty splat.
func (s *GaussianSplat) BBox() BoundingBox {
	b, _ := s.BBoxOK()
	return b
}

// BBoxOK is like BBox but also reports whether the splat had any position to bound.
func (s *GaussianSplat) BBoxOK() (BoundingBox, bool) {
	if len(s.Positions) < 3 {
		return BoundingBox{}, false
	}

	p := s.Positions
	b := BoundingBox{MinX: p[0], MaxX: p[0], MinY: p[1], MaxY: p[1], MinZ: p[2], MaxZ: p[2]}
	for i := 3; i+2 < len(p); i += 3 {
		b.MinX, b.MaxX = min(b.MinX, p[i]), max(b.MaxX, p[i])
		b.MinY, b.MaxY = min(b.MinY, p[i+1]), max(b.MaxY, p[i+1])
		b.MinZ, b.MaxZ = min(b.MinZ, p[i+2]), max(b.MaxZ, p[i+2])
	}

	return b, true
}

// Summary returns a multi-line, tab-indented report of the splat.
func (s *GaussianSplat) Summary() string {
	b := s.BBox()
	size := b.Size()
	center := b.Center()

	var sb strings.Builder
	sb.WriteString("GaussianSplat:\n")
	fmt.Fprintf(&sb, "\tNumber of points:\t\t%d\n", s.NumPoints)
	fmt.Fprintf(&sb, "\tSpherical harmonics degree:\t%d\n", s.SHDegree)
	fmt.Fprintf(&sb, "\tAntialiased:\t\t\t%t\n", s.Antialiased)
	fmt.Fprintf(&sb, "\tMedian ellipsoid volume:\t%.6f\n", s.MedianVolume())
	fmt.Fprintf(&sb, "\tBounding box:\n\t\tx: %.6f to %.6f (size %.6f, center %.6f)\n", b.MinX, b.MaxX, size[0], center[0])
	fmt.Fprintf(&sb, "\t\ty: %.6f to %.6f (size %.6f, center %.6f)\n", b.MinY, b.MaxY, size[1], center[1])
	fmt.Fprintf(&sb, "\t\tz: %.6f to %.6f (size %.6f, center %.6f)\n", b.MinZ, b.MaxZ, size[2], center[2])

	return sb.String()
}

// String returns a single-line description.
func (s *GaussianSplat) String() string {
	b := s.BBox()

	return fmt.Sprintf("GaussianSplat={num_points=%d, sh_degree=%d, antialiased=%t, median_ellipsoid_volume=%g, "+
		"bbox=[x=%.6f to %.6f, y=%.6f to %.6f, z=%.6f to %.6f]}",
		s.NumPoints, s.SHDegree, s.Antialiased, s.MedianVolume(),
		b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
}

// Info is a JSON-friendly description of a splat.
type Info struct {
	NumPoints    int      `json:"num_points"`
	SHDegree     int      `json:"spherical_harmonics_degree"`
	Antialiased  bool     `json:"antialiased"`
	MedianVolume float32  `json:"median_ellipsoid_volume"`
	BoundingBox  *BoxInfo `json:"bounding_box,omitempty"`
}

// BoxInfo is the JSON form of a BoundingBox. It is omitted for empty splats.
type BoxInfo struct {
	Min    [3]float32 `json:"min"`
	Max    [3]float32 `json:"max"`
	Size   [3]float32 `json:"size"`
	Center [3]float32 `json:"center"`
}

// Info collects the report values of Summary.
func (s *GaussianSplat) Info() Info {
	info := Info{
		NumPoints:    s.NumPoints,
		SHDegree:     s.SHDegree,
		Antialiased:  s.Antialiased,
		MedianVolume: s.MedianVolume(),
	}

	if b, ok := s.BBoxOK(); ok {
		info.BoundingBox = &BoxInfo{
			Min:    [3]float32{b.MinX, b.MinY, b.MinZ},
			Max:    [3]float32{b.MaxX, b.MaxY, b.MaxZ},
			Size:   b.Size(),
			Center: b.Center(),
		}
	}

	return info
}

// InfoJSON renders Info as JSON.
func (s *GaussianSplat) InfoJSON() ([]byte, error) {
	return gojson.Marshal(s.Info())
}

// Fingerprint hashes the quantized payload of s, without any coordinate conversion.
//
// Splats that encode to the same payload share a fingerprint, so float noise below
// the quantization step does not change it.
func (s *GaussianSplat) Fingerprint() (uint64, error) {
	p, err := s.ToPacked(coord.Unspecified)
	if err != nil {
		return 0, err
	}

	h, err := p.Header()
	if err != nil {
		return 0, err
	}

	return hash.Parts(h.Bytes(), p.Positions, p.Alphas, p.Colors, p.Scales, p.Rotations, p.SphericalHarmonics), nil
}
