package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat32Slice(t *testing.T) {
	s, cleanup := GetFloat32Slice(10)
	require.Len(t, s, 10)
	for i := range s {
		s[i] = float32(i)
	}
	cleanup()

	s2, cleanup2 := GetFloat32Slice(5)
	defer cleanup2()
	require.Len(t, s2, 5)
}

func TestGetFloat32Slice_Grows(t *testing.T) {
	s, cleanup := GetFloat32Slice(2)
	cleanup()

	big, cleanup := GetFloat32Slice(4096)
	defer cleanup()
	require.Len(t, big, 4096)
	require.GreaterOrEqual(t, cap(big), len(s))
}

func TestGetFloat32Slice_Zero(t *testing.T) {
	s, cleanup := GetFloat32Slice(0)
	defer cleanup()
	require.Empty(t, s)
}
