// Package f16 converts IEEE-754 binary16 values, the position storage of version 1 spz files.
package f16

import (
	"encoding/binary"
	"math"
)

// Bits is the raw binary16 bit pattern: 1 sign bit, 5 exponent bits (bias 15), 10 fraction bits.
type Bits uint16

const (
	signMask Bits = 0x8000
	expMask  Bits = 0x7C00
	fracMask Bits = 0x03FF

	f32ExpMask  uint32 = 0x7F800000
	f32FracMask uint32 = 0x007FFFFF
)

// ToFloat32 widens a binary16 value to float32. The conversion is exact.
func ToFloat32(h Bits) float32 {
	sign := uint32(h&signMask) << 16
	exp := uint32(h&expMask) >> 10
	frac := uint32(h & fracMask)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// subnormal: shift the fraction up until the implicit bit appears
		e := int32(-14)
		for frac&0x0400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x03FF

		return math.Float32frombits(sign | uint32(127+e)<<23 | frac<<13)
	case 0x1F:
		return math.Float32frombits(sign | f32ExpMask | frac<<13)
	default:
		return math.Float32frombits(sign | uint32(int32(exp)-15+127)<<23 | frac<<13)
	}
}

// FromFloat32 narrows f to binary16, rounding to nearest with ties to even.
// Values beyond the binary16 range become infinities.
func FromFloat32(f float32) Bits {
	bits := math.Float32bits(f)
	sign := Bits((bits >> 16) & uint32(signMask))
	exp := int32((bits & f32ExpMask) >> 23)
	frac := bits & f32FracMask

	if exp == 0xFF {
		if frac == 0 {
			return sign | expMask
		}
		// keep a quiet, non-zero payload
		payload := Bits(frac>>13) | 0x0200

		return sign | expMask | (payload & fracMask)
	}
	if exp == 0 {
		return sign
	}

	e16 := exp - 127 + 15
	if e16 >= 0x1F {
		return sign | expMask
	}

	if e16 <= 0 {
		if e16 < -10 {
			return sign
		}
		mant := frac | 0x00800000
		shift := uint32(1-e16) + 13
		m := mant >> shift
		rem := mant & (uint32(1)<<shift - 1)
		half := uint32(1) << (shift - 1)
		if rem > half || (rem == half && m&1 == 1) {
			m++
		}

		return sign | Bits(m)
	}

	m := frac >> 13
	rem := frac & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && m&1 == 1) {
		m++
		if m == 0x0400 {
			m = 0
			e16++
			if e16 >= 0x1F {
				return sign | expMask
			}
		}
	}

	return sign | Bits(uint32(e16)<<10) | Bits(m)
}

// Decode reads a little-endian binary16 value from the first two bytes of b.
func Decode(b []byte) float32 {
	return ToFloat32(Bits(binary.LittleEndian.Uint16(b)))
}

// Encode writes f as little-endian binary16 into the first two bytes of b.
func Encode(b []byte, f float32) {
	binary.LittleEndian.PutUint16(b, uint16(FromFloat32(f)))
}
