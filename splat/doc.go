// Package splat provides the full-precision, in-memory form of a Gaussian splat.
//
// A GaussianSplat stores one float32 array per attribute:
//
//	Field               Values per point  Domain
//	------------------  ----------------  -------------------------------------
//	Positions           3                 x, y, z
//	Scales              3                 natural log of the per-axis radius
//	Rotations           4                 unit quaternion x, y, z, w
//	Alphas              1                 opacity before the sigmoid activation
//	Colors              3                 DC color term
//	SphericalHarmonics  3 x dim(degree)   rgb interleaved per coefficient
//
// Conversion to and from the packed form composes quantization with a coordinate system
// change: FromPacked converts from the storage convention (RUB) into the requested
// system, and ToPacked bakes the flips from the caller's system into RUB while
// quantizing.
//
// Example:
//
//	p, err := packed.Decode(fileBytes)
//	if err != nil {
//	    return err
//	}
//	s, err := splat.FromPacked(p, coord.RightDownFront)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Summary())
package splat
