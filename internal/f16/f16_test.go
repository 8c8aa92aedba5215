package f16

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToFloat32_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   Bits
		want float32
	}{
		{"+0", 0x0000, 0},
		{"+1", 0x3C00, 1},
		{"-1", 0xBC00, -1},
		{"+2", 0x4000, 2},
		{"0.5", 0x3800, 0.5},
		{"max", 0x7BFF, 65504},
		{"+Inf", 0x7C00, float32(math.Inf(1))},
		{"-Inf", 0xFC00, float32(math.Inf(-1))},
		{"min_subnormal", 0x0001, float32(math.Ldexp(1, -24))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToFloat32(tt.in))
		})
	}
}

func TestToFloat32_NegativeZero(t *testing.T) {
	got := ToFloat32(0x8000)
	require.Equal(t, math.Float32bits(float32(math.Copysign(0, -1))), math.Float32bits(got))
}

func TestToFloat32_NaN(t *testing.T) {
	require.True(t, math.IsNaN(float64(ToFloat32(0x7E00))))
}

func TestFromFloat32_KnownValues(t *testing.T) {
	require.Equal(t, Bits(0x0000), FromFloat32(0))
	require.Equal(t, Bits(0x8000), FromFloat32(float32(math.Copysign(0, -1))))
	require.Equal(t, Bits(0x3C00), FromFloat32(1))
	require.Equal(t, Bits(0xC000), FromFloat32(-2))
	require.Equal(t, Bits(0x7C00), FromFloat32(1e6))
	require.Equal(t, Bits(0xFC00), FromFloat32(-1e6))
	require.Equal(t, Bits(0x0000), FromFloat32(1e-10))
	require.True(t, math.IsNaN(float64(ToFloat32(FromFloat32(float32(math.NaN()))))))
}

func TestRoundTrip_AllFinite(t *testing.T) {
	for i := range 0x10000 {
		h := Bits(i)
		if h&expMask == expMask {
			continue
		}
		require.Equal(t, h, FromFloat32(ToFloat32(h)), "bits %04x", i)
	}
}

func TestEncodeDecode_Bytes(t *testing.T) {
	buf := make([]byte, 2)
	Encode(buf, 1.5)
	require.Equal(t, []byte{0x00, 0x3E}, buf)
	require.Equal(t, float32(1.5), Decode(buf))
}
