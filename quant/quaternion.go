package quant

import (
	"encoding/binary"
	"math"
)

const (
	// components are scaled so that 1/sqrt(2) maps to the largest magnitude
	sqrtHalf  = float32(math.Sqrt2 / 2)
	magMask   = 1<<9 - 1
	magBits   = 10
	float32Ep = 0x1p-23
)

// NormalizeQuaternion returns q scaled to unit length. A quaternion with squared norm
// below float32 machine epsilon becomes the identity rotation (0, 0, 0, 1).
func NormalizeQuaternion(q [4]float32) [4]float32 {
	normSq := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if normSq < float32Ep {
		return [4]float32{0, 0, 0, 1}
	}
	inv := float32(1 / math.Sqrt(float64(normSq)))

	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// PackQuaternionSmallestThree encodes rotation (x, y, z, w) into 4 bytes.
//
// The quaternion is normalized and its x, y and z are multiplied by flip. The component
// with the largest magnitude is dropped; its index takes the top two bits of a little-endian
// 32-bit word, followed by three 10-bit fields (sign bit plus 9-bit magnitude) for the
// remaining components in index order. Signs are stored relative to the dropped
// component so that it decodes as non-negative.
func PackQuaternionSmallestThree(dst []byte, rotation [4]float32, flip [3]float32) {
	q := NormalizeQuaternion(rotation)
	q[0] *= flip[0]
	q[1] *= flip[1]
	q[2] *= flip[2]

	largest := 0
	for i := 1; i < 4; i++ {
		if abs32(q[i]) > abs32(q[largest]) {
			largest = i
		}
	}
	negate := q[largest] < 0

	comp := uint32(largest)
	for i := range 4 {
		if i == largest {
			continue
		}
		var negbit uint32
		if (q[i] < 0) != negate {
			negbit = 1
		}
		mag := uint32(math.Floor(float64(magMask*(abs32(q[i])/sqrtHalf) + 0.5)))
		mag = min(mag, magMask)

		comp = comp<<magBits | negbit<<9 | mag
	}

	binary.LittleEndian.PutUint32(dst, comp)
}

// UnpackQuaternionSmallestThree decodes 4 bytes written by PackQuaternionSmallestThree
// into dst (x, y, z, w), then multiplies x, y and z by flip.
func UnpackQuaternionSmallestThree(dst []float32, r []byte, flip [3]float32) {
	_ = dst[3]
	comp := binary.LittleEndian.Uint32(r)
	largest := int(comp >> 30)

	var sumSquares float32
	for i := 3; i >= 0; i-- {
		if i == largest {
			continue
		}
		mag := comp & magMask
		neg := (comp >> 9) & 1
		comp >>= magBits

		val := sqrtHalf * float32(mag) / magMask
		if neg == 1 {
			val = -val
		}
		dst[i] = val
		sumSquares += val * val
	}
	dst[largest] = sqrt32(max(0, 1-sumSquares))

	dst[0] *= flip[0]
	dst[1] *= flip[1]
	dst[2] *= flip[2]
}

// PackQuaternionFirstThree encodes rotation with the legacy scheme: x, y and z of the
// normalized quaternion, sign-adjusted so w is non-negative, each mapped from [-1, 1]
// onto a byte.
func PackQuaternionFirstThree(dst []byte, rotation [4]float32, flip [3]float32) {
	q := NormalizeQuaternion(rotation)
	if q[3] < 0 {
		q = [4]float32{-q[0], -q[1], -q[2], -q[3]}
	}

	for i := range 3 {
		dst[i] = ToU8((q[i]*flip[i] + 1) * 127.5)
	}
}

// UnpackQuaternionFirstThree decodes the legacy 3-byte rotation into dst (x, y, z, w).
// w is reconstructed as sqrt(max(0, 1 - x² - y² - z²)) after x, y and z are flipped.
func UnpackQuaternionFirstThree(dst []float32, r []byte, flip [3]float32) {
	_ = dst[3]
	const scale = float32(1.0 / 127.5)

	x := (float32(r[0])*scale - 1) * flip[0]
	y := (float32(r[1])*scale - 1) * flip[1]
	z := (float32(r[2])*scale - 1) * flip[2]

	dst[0], dst[1], dst[2] = x, y, z
	dst[3] = sqrt32(max(0, 1-(x*x+y*y+z*z)))
}

func abs32(v float32) float32 {
	return math.Float32frombits(math.Float32bits(v) &^ (1 << 31))
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
