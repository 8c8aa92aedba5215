package section

const (
	// MagicValue is "NGSP" read as a little-endian int32.
	MagicValue int32 = 0x5053474e

	// HeaderSize is the fixed size of the header in bytes.
	HeaderSize = 16

	// MaxSphericalHarmonicsDegree is the highest supported SH degree.
	MaxSphericalHarmonicsDegree = 3

	// DefaultFractionalBits is used by the encoder for fixed24 positions (~0.24mm resolution).
	DefaultFractionalBits = 12
)

// byte offsets of the header fields
const (
	offsetMagic          = 0
	offsetVersion        = 4
	offsetNumPoints      = 8
	offsetSHDegree       = 12
	offsetFractionalBits = 13
	offsetFlags          = 14
	offsetReserved       = 15
)
