package section

import (
	"bytes"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

func TestNewHeader(t *testing.T) {
	header := NewHeader(42, 2, DefaultFractionalBits, true)

	require.Equal(t, MagicValue, header.Magic)
	require.Equal(t, format.Version3, header.Version)
	require.Equal(t, int32(42), header.NumPoints)
	require.Equal(t, uint8(2), header.SphericalHarmonicsDegree)
	require.Equal(t, uint8(12), header.FractionalBits)
	require.True(t, header.IsAntialiased())
	require.Zero(t, header.Reserved)
	require.True(t, header.IsValid())
}

func TestHeader_Bytes(t *testing.T) {
	header := NewHeader(0x01020304, 3, 12, true)

	data := header.Bytes()
	require.Len(t, data, HeaderSize)

	want := []byte{
		'N', 'G', 'S', 'P',
		0x03, 0x00, 0x00, 0x00,
		0x04, 0x03, 0x02, 0x01,
		0x03, 0x0C, 0x01, 0x00,
	}
	require.Equal(t, want, data)
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewHeader(1000, 1, 12, false)

		parsed := &Header{}
		err := parsed.Parse(original.Bytes())

		require.NoError(t, err)
		require.Equal(t, original, *parsed)
	})

	t.Run("Longer buffer uses first 16 bytes", func(t *testing.T) {
		original := NewHeader(7, 0, 10, true)
		data := append(original.Bytes(), 0xAA, 0xBB, 0xCC)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &Header{}
		err := header.Parse([]byte{1, 2, 3})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Parse does not validate", func(t *testing.T) {
		data := make([]byte, HeaderSize)

		header, err := ParseHeader(data)
		require.NoError(t, err)
		require.False(t, header.IsValid())
	})
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, version := range []format.Version{format.Version2, format.Version3} {
		for degree := uint8(0); degree <= MaxSphericalHarmonicsDegree; degree++ {
			for _, antialiased := range []bool{false, true} {
				for _, numPoints := range []int32{0, 1, 50000, 1<<31 - 1} {
					original := NewHeader(numPoints, degree, 12, antialiased)
					original.Version = version

					parsed, err := ReadValidatedHeader(original.Bytes())
					require.NoError(t, err)
					require.Equal(t, original, parsed)
					require.Zero(t, parsed.Reserved)
				}
			}
		}
	}
}

func TestHeader_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *Header)
		reason error
	}{
		{"bad magic", func(h *Header) { h.Magic = 0x12345678 }, errs.ErrInvalidMagicNumber},
		{"version 1", func(h *Header) { h.Version = format.Version1 }, errs.ErrUnsupportedVersion},
		{"version 4", func(h *Header) { h.Version = 4 }, errs.ErrUnsupportedVersion},
		{"sh degree 4", func(h *Header) { h.SphericalHarmonicsDegree = 4 }, errs.ErrUnsupportedSphericalHarmonicsDegree},
		{"negative points", func(h *Header) { h.NumPoints = -1 }, errs.ErrInconsistentSizes},
		{"unknown flags", func(h *Header) { h.Flags = 0x02 }, nil},
		{"reserved set", func(h *Header) { h.Reserved = 1 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewHeader(10, 1, 12, false)
			tt.mutate(&header)

			err := header.Validate()
			require.ErrorIs(t, err, errs.ErrHeaderInvalid)
			if tt.reason != nil {
				require.ErrorIs(t, err, tt.reason)
			}
			require.False(t, header.IsValid())

			_, err = ReadValidatedHeader(header.Bytes())
			require.ErrorIs(t, err, errs.ErrHeaderInvalid)
		})
	}
}

func TestReadHeader(t *testing.T) {
	original := NewHeader(3, 2, 12, false)

	var buf bytes.Buffer
	n, err := original.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize), n)
	buf.WriteString("payload")

	parsed, err := ReadHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
	require.Equal(t, "payload", buf.String())

	_, err = ReadHeader(bytes.NewReader([]byte{1, 2, 3}))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestHeader_Summary(t *testing.T) {
	header := NewHeader(1234, 3, 12, true)

	summary := header.Summary()
	require.Contains(t, summary, "Number of points:\t\t1234")
	require.Contains(t, summary, "Spherical harmonics degree:\t3")
	require.Contains(t, summary, "Antialiased:\t\t\ttrue")

	require.Contains(t, header.String(), "num_points=1234")
}

func TestHeader_MarshalJSON(t *testing.T) {
	header := NewHeader(5, 1, 12, true)

	data, err := gojson.Marshal(header)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, gojson.Unmarshal(data, &decoded))
	require.EqualValues(t, 5, decoded["num_points"])
	require.EqualValues(t, 3, decoded["version"])
	require.EqualValues(t, 1, decoded["spherical_harmonics_degree"])
	require.Equal(t, true, decoded["antialiased"])
	require.Equal(t, true, decoded["valid"])
}

func TestFlags(t *testing.T) {
	var flags Flags
	require.False(t, flags.IsAntialiased())
	require.False(t, flags.HasUnknownBits())

	flags.WithAntialiased()
	require.True(t, flags.IsAntialiased())
	require.False(t, flags.HasUnknownBits())

	flags.SetAntialiased(false)
	require.False(t, flags.IsAntialiased())

	flags = 0x81
	require.True(t, flags.IsAntialiased())
	require.True(t, flags.HasUnknownBits())

	flags.WithoutAntialiased()
	require.Equal(t, Flags(0x80), flags)
}
