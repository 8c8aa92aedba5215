// Package packed implements the quantized, on-disk representation of a Gaussian splat.
//
// A Gaussians value holds one byte array per attribute, exactly as they appear in the
// serialized payload, together with the scalar fields of the header. Arrays are
// written and read in a fixed order that differs from the field order of the struct:
//
//	positions, alphas, colors, scales, rotations, spherical harmonics
//
// Per-point widths depend on the format version:
//
//	Array               Width (bytes per point)
//	------------------  ---------------------------------------------
//	positions           9 (fixed24 x3), or 6 (float16 x3, version 1)
//	alphas              1
//	colors              3
//	scales              3
//	rotations           4 (smallest-three, version >= 3), or 3
//	spherical harmonics 3 x dim(degree), dim = 0, 3, 8, 15
//
// Decode and Encode wrap Parse and Bytes with the container compression (gzip for
// standard files). At and Unpack provide random access to single points for tools and
// tests; bulk conversion to float32 arrays lives in the splat package.
package packed
