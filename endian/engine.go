// Package endian provides byte order utilities for the spz wire format.
//
// Every multi-byte quantity in an spz payload is little-endian. This package wraps
// encoding/binary's little-endian order in the EndianEngine interface and adds the
// 24-bit signed integer helpers used by fixed-point positions, which encoding/binary
// does not offer.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	magic := int32(engine.Uint32(buf[0:4]))
//
//	fixed := endian.Int24(buf[4:7])
//	endian.PutInt24(buf[4:7], fixed)
//
// # Thread Safety
//
// All functions are safe for concurrent use. The returned EndianEngine is immutable.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

const (
	// MaxInt24 is the largest value representable by a signed 24-bit integer.
	MaxInt24 = 1<<23 - 1
	// MinInt24 is the smallest value representable by a signed 24-bit integer.
	MinInt24 = -1 << 23
)

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Int24 decodes a sign-extended 24-bit little-endian integer from b[0:3].
func Int24(b []byte) int32 {
	_ = b[2] // bounds check hint to compiler

	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF
	}

	return v
}

// PutInt24 encodes the low 24 bits of v into b[0:3] in little-endian order.
// Values outside [MinInt24, MaxInt24] are truncated to their low 24 bits.
func PutInt24(b []byte, v int32) {
	_ = b[2] // bounds check hint to compiler

	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// AppendInt24 appends the low 24 bits of v to b in little-endian order.
func AppendInt24(b []byte, v int32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16))
}
