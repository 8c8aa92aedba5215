// Package section defines the fixed 16-byte header that prefixes every spz payload.
//
// The header is the only structured metadata in an spz file. It lives inside the gzip
// stream, immediately followed by the packed point arrays.
//
// # Payload Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (16 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Positions (N × 9 bytes, or N × 6 for version 1)         │
//	├─────────────────────────────────────────────────────────┤
//	│ Alphas (N × 1 byte)                                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Colors (N × 3 bytes)                                    │
//	├─────────────────────────────────────────────────────────┤
//	│ Scales (N × 3 bytes)                                    │
//	├─────────────────────────────────────────────────────────┤
//	│ Rotations (N × 4 bytes, or N × 3 before version 3)      │
//	├─────────────────────────────────────────────────────────┤
//	│ Spherical Harmonics (N × 3 × dim(degree) bytes)         │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field                    | Type   | Description
//	-------|--------------------------|--------|----------------------------------
//	0-3    | Magic                    | int32  | 0x5053474e ("NGSP")
//	4-7    | Version                  | int32  | 1, 2 or 3 (only 2 and 3 validate)
//	8-11   | NumPoints                | int32  | Number of gaussians, >= 0
//	12     | SphericalHarmonicsDegree | uint8  | 0..3
//	13     | FractionalBits           | uint8  | Fixed-point scale 2^bits
//	14     | Flags                    | uint8  | Bit 0: antialiased
//	15     | Reserved                 | uint8  | Must be 0
//
// All integers are little-endian. Parsing and serialization are explicit field-by-field
// operations, independent of host struct layout.
//
// # Parse vs. Validate
//
// Parse only interprets bytes; it fails solely when fewer than 16 bytes are supplied.
// Validate (and IsValid) apply the format rules. ReadValidatedHeader combines both.
package section
