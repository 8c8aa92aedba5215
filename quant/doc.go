// Package quant holds the pure quantization math of the spz format.
//
// Every attribute of a Gaussian is stored as a small integer. This package converts
// between those integers and full-precision float32 values:
//
//	Attribute           Stored as                         Decoded as
//	------------------  --------------------------------  ---------------------------
//	position            24-bit signed fixed point         fixed / 2^fractionalBits
//	position (v1)       IEEE binary16                     float16 -> float32
//	scale               uint8                             byte/16 - 10 (natural log)
//	alpha               uint8                             logit(byte/255)
//	color               uint8                             (byte/255 - 0.5) / 0.15
//	rotation (v3)       smallest-three, 32 bits           unit quaternion x,y,z,w
//	rotation (v2)       first-three, 3 x uint8            unit quaternion x,y,z,w
//	spherical harmonic  uint8 (5 or 4 significant bits)   (byte-128)/128
//
// The functions never allocate and operate on caller-provided slices.
package quant
