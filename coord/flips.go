package coord

// AxisFlips holds the +1/-1 multipliers that carry data from one convention to another.
type AxisFlips struct {
	// Position multiplies x, y and z of a position.
	Position [3]float32
	// Rotation multiplies x, y and z of a quaternion. The w component never flips.
	Rotation [3]float32
	// SphericalHarmonics multiplies each of the 15 per-channel SH coefficients of a point,
	// in coefficient order. All three color channels of a coefficient share the sign.
	SphericalHarmonics [15]float32
}

// Identity is the no-op flip set.
var Identity = AxisFlips{
	Position:           [3]float32{1, 1, 1},
	Rotation:           [3]float32{1, 1, 1},
	SphericalHarmonics: [15]float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// IsIdentity reports whether applying f changes nothing.
func (f AxisFlips) IsIdentity() bool {
	return f == Identity
}

// AxesAlign reports, per axis, whether c and other point the same way.
// Unspecified on either side aligns everything.
func (c CoordinateSystem) AxesAlign(other CoordinateSystem) (x, y, z bool) {
	if c == Unspecified || other == Unspecified {
		return true, true, true
	}

	a := uint8(c) - 1
	b := uint8(other) - 1

	return a&1 == b&1, (a>>1)&1 == (b>>1)&1, (a>>2)&1 == (b>>2)&1
}

// AxisFlipsTo derives the multipliers that convert data authored in c into target.
func (c CoordinateSystem) AxisFlipsTo(target CoordinateSystem) AxisFlips {
	xm, ym, zm := c.AxesAlign(target)
	x, y, z := sign(xm), sign(ym), sign(zm)

	return AxisFlips{
		Position: [3]float32{x, y, z},
		Rotation: [3]float32{y * z, x * z, x * y},
		// Parity of each real SH basis function under the axis reflections.
		SphericalHarmonics: [15]float32{
			y, z, x, // degree 1
			x * y, y * z, 1, x * z, 1, // degree 2
			y, x * y * z, y, z, x, z, x, // degree 3
		},
	}
}

func sign(aligned bool) float32 {
	if aligned {
		return 1
	}

	return -1
}
