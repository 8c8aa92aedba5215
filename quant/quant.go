package quant

import (
	"fmt"
	"math"

	"github.com/arloliu/spz/endian"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/internal/f16"
)

const (
	// ColorScale maps the DC color term into the byte range.
	ColorScale float32 = 0.15

	// SH1Bits is the precision of the first nine SH values (degree-1 band) of a point.
	SH1Bits = 5
	// SHRestBits is the precision of SH values beyond the degree-1 band.
	SHRestBits = 4

	// SH1Step and SHRestStep are the quantization steps matching SH1Bits and SHRestBits.
	SH1Step    = 1 << (8 - SH1Bits)
	SHRestStep = 1 << (8 - SHRestBits)

	// SHNeutral is the byte encoding a zero coefficient.
	SHNeutral byte = 128

	// MaxSHDim is the number of SH coefficients per channel at degree 3.
	MaxSHDim = 15

	// MaxFractionalBits is the largest fractional bit count with a non-zero scale.
	MaxFractionalBits = 31

	alphaEpsilon = 1e-6
)

var shDims = [...]int{0, 3, 8, 15}

// DimForDegree returns the number of SH coefficients per color channel for degree.
// Degrees outside 0..3 yield 0.
func DimForDegree(degree int) int {
	if degree < 0 || degree >= len(shDims) {
		return 0
	}

	return shDims[degree]
}

// DegreeForDim returns the largest degree whose coefficient count fits in dim.
func DegreeForDim(dim int) int {
	switch {
	case dim < 3:
		return 0
	case dim < 8:
		return 1
	case dim < 15:
		return 2
	default:
		return 3
	}
}

// ToU8 rounds x to the nearest byte after clamping to [0, 255]. NaN maps to 0.
func ToU8(x float32) byte {
	if x != x {
		return 0
	}
	x = max(0, min(255, x))

	return byte(math.Round(float64(x)))
}

// PositionScale returns 2^fractionalBits as float32.
//
// Returns errs.ErrInvalidFractionalBits when the scale would be zero.
func PositionScale(fractionalBits int) (float32, error) {
	if fractionalBits < 0 || fractionalBits > MaxFractionalBits {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidFractionalBits, fractionalBits)
	}

	return float32(uint32(1) << uint(fractionalBits)), nil
}

// DecodeFixed24 reads a sign-extended 24-bit little-endian fixed point value from b and
// multiplies it by invScale (1 / 2^fractionalBits).
func DecodeFixed24(b []byte, invScale float32) float32 {
	return float32(endian.Int24(b)) * invScale
}

// EncodeFixed24 rounds v*scale to the nearest integer, clamps it to the signed 24-bit
// range and writes it little-endian into b.
func EncodeFixed24(b []byte, v, scale float32) {
	f := float64(v) * float64(scale)
	var fixed int32
	switch {
	case f != f:
		fixed = 0
	case f >= endian.MaxInt24:
		fixed = endian.MaxInt24
	case f <= endian.MinInt24:
		fixed = endian.MinInt24
	default:
		fixed = int32(math.Round(f))
	}

	endian.PutInt24(b, fixed)
}

// DecodeFloat16 reads a little-endian binary16 value from b.
func DecodeFloat16(b []byte) float32 {
	return f16.Decode(b)
}

// EncodeFloat16 writes v as little-endian binary16 into b.
func EncodeFloat16(b []byte, v float32) {
	f16.Encode(b, v)
}

// DecodeScale converts a stored byte into a natural-log scale.
func DecodeScale(b byte) float32 {
	return float32(b)/16 - 10
}

// EncodeScale is the inverse of DecodeScale, clamped to the byte range.
func EncodeScale(s float32) byte {
	return ToU8((s + 10) * 16)
}

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// InvSigmoid returns ln(x / (1-x)) with x clamped to [1e-6, 1-1e-6].
func InvSigmoid(x float32) float32 {
	x = max(alphaEpsilon, min(1-alphaEpsilon, x))

	return float32(math.Log(float64(x / (1 - x))))
}

// DecodeAlpha converts a stored opacity byte into the pre-sigmoid (logit) domain.
func DecodeAlpha(b byte) float32 {
	return InvSigmoid(float32(b) / 255)
}

// EncodeAlpha is the inverse of DecodeAlpha.
func EncodeAlpha(a float32) byte {
	return ToU8(Sigmoid(a) * 255)
}

// DecodeColor converts a stored color byte into the DC-term domain.
func DecodeColor(b byte) float32 {
	return (float32(b)/255 - 0.5) / ColorScale
}

// EncodeColor is the inverse of DecodeColor, clamped to the byte range.
func EncodeColor(c float32) byte {
	return ToU8(c*(ColorScale*255) + 0.5*255)
}

// QuantizeSH maps an SH coefficient to a byte with the given step (a power of two).
// The rounded value is truncated to a multiple of step and clamped to [0, 255].
func QuantizeSH(v float32, step int) byte {
	r := math.Round(float64(v)*128 + 128)
	if r != r {
		return 0
	}
	// keep the integer conversion in range before truncating
	r = max(-1024, min(1024, r))
	q := (int(r) / step) * step

	return byte(max(0, min(255, q)))
}

// UnquantizeSH maps a stored SH byte back to [-1, 127/128].
func UnquantizeSH(b byte) float32 {
	return (float32(b) - 128) / 128
}

// SHStep returns the quantization step for the value at offset j within one point's
// interleaved SH block (3 values per coefficient).
func SHStep(j int) int {
	if j < 9 {
		return SH1Step
	}

	return SHRestStep
}
