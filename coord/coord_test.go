package coord

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/errs"
)

func TestAxesAlign(t *testing.T) {
	tests := []struct {
		a, b    CoordinateSystem
		x, y, z bool
	}{
		{RightUpBack, LeftUpFront, false, true, false},
		{RightUpBack, RightUpBack, true, true, true},
		{RightDownFront, RightUpBack, true, false, false},
		{LeftDownBack, RightUpFront, false, false, false},
		{Unspecified, LeftDownBack, true, true, true},
		{RightUpFront, Unspecified, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.a.ShortName()+"_"+tt.b.ShortName(), func(t *testing.T) {
			x, y, z := tt.a.AxesAlign(tt.b)
			require.Equal(t, tt.x, x)
			require.Equal(t, tt.y, y)
			require.Equal(t, tt.z, z)
		})
	}
}

func TestAxesAlign_Symmetric(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			ax, ay, az := a.AxesAlign(b)
			bx, by, bz := b.AxesAlign(a)
			require.Equal(t, [3]bool{ax, ay, az}, [3]bool{bx, by, bz}, "%s vs %s", a, b)
		}
	}
}

func TestAxisFlipsTo_SelfIsIdentity(t *testing.T) {
	for _, c := range All() {
		f := c.AxisFlipsTo(c)
		require.True(t, f.IsIdentity(), c.String())
		require.Equal(t, [3]float32{1, 1, 1}, f.Position)
		require.Equal(t, [3]float32{1, 1, 1}, f.Rotation)
	}
}

func TestAxisFlipsTo_UnspecifiedIsIdentity(t *testing.T) {
	for _, c := range All() {
		require.True(t, c.AxisFlipsTo(Unspecified).IsIdentity())
		require.True(t, Unspecified.AxisFlipsTo(c).IsIdentity())
	}
}

func TestAxisFlipsTo_PLYToGLB(t *testing.T) {
	// RDF -> LUF flips X and Y, Z stays Front.
	f := PLY.AxisFlipsTo(GLB)

	require.Equal(t, [3]float32{-1, -1, 1}, f.Position)
	require.Equal(t, [3]float32{-1, -1, 1}, f.Rotation)
	require.Equal(t, [15]float32{
		-1, 1, -1,
		1, -1, 1, -1, 1,
		-1, 1, -1, 1, -1, 1, -1,
	}, f.SphericalHarmonics)
}

func TestAxisFlipsTo_RUBToRDF(t *testing.T) {
	f := RUB.AxisFlipsTo(RightDownFront)

	require.Equal(t, [3]float32{1, -1, -1}, f.Position)
	require.Equal(t, [3]float32{1, -1, -1}, f.Rotation)
	require.Equal(t, [15]float32{
		-1, -1, 1,
		-1, 1, 1, -1, 1,
		-1, 1, -1, -1, 1, -1, 1,
	}, f.SphericalHarmonics)
}

func TestAxisFlipsTo_Involution(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			ab := a.AxisFlipsTo(b)
			ba := b.AxisFlipsTo(a)
			require.Equal(t, ab, ba)

			for i := range 3 {
				require.Equal(t, float32(1), ab.Position[i]*ba.Position[i])
			}
		}
	}
}

func TestCoordinateSystem_Ordinals(t *testing.T) {
	require.Equal(t, CoordinateSystem(0), Unspecified)
	require.Equal(t, CoordinateSystem(1), LeftDownBack)
	require.Equal(t, CoordinateSystem(4), RightUpBack)
	require.Equal(t, CoordinateSystem(6), RightDownFront)
	require.Equal(t, CoordinateSystem(7), LeftUpFront)
	require.Equal(t, CoordinateSystem(8), RightUpFront)
	require.Len(t, All(), 9)
}

func TestCoordinateSystem_Names(t *testing.T) {
	assert.Equal(t, "Right-Up-Back", RUB.String())
	assert.Equal(t, "RUB", RUB.ShortName())
	assert.Equal(t, "Unspecified", Unspecified.String())
	assert.Equal(t, "UNSPECIFIED", Unspecified.ShortName())
	assert.Equal(t, "RDF", PLY.ShortName())
	assert.Equal(t, "CoordinateSystem(42)", CoordinateSystem(42).String())
	assert.False(t, CoordinateSystem(9).IsValid())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want CoordinateSystem
	}{
		{"rub", RightUpBack},
		{"RUB", RightUpBack},
		{"RightUpBack", RightUpBack},
		{"right-up-back", RightUpBack},
		{"RIGHT_UP_BACK", RightUpBack},
		{"ldb", LeftDownBack},
		{"Left-Down-Front", LeftDownFront},
		{"luf", LeftUpFront},
		{"ply", PLY},
		{"GLB", GLB},
		{"unity", Unity},
		{"threejs", ThreeJS},
		{"", Unspecified},
		{"unspecified", Unspecified},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RoundTripNames(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)

		got, err = Parse(c.ShortName())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"xyz", "up", "RUBX", "left-up"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, errs.ErrInvalidCoordinateSystem, in)
	}

	require.Panics(t, func() { MustParse("sideways") })
	require.Equal(t, PLY, MustParse("rdf"))
}

func TestCoordinateSystem_Text(t *testing.T) {
	type doc struct {
		System CoordinateSystem `json:"system"`
	}

	out, err := json.Marshal(doc{System: GLB})
	require.NoError(t, err)
	require.JSONEq(t, `{"system":"LUF"}`, string(out))

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"system":"right-down-front"}`), &d))
	require.Equal(t, RightDownFront, d.System)

	require.Error(t, json.Unmarshal([]byte(`{"system":"north"}`), &d))

	_, err = CoordinateSystem(12).MarshalText()
	require.ErrorIs(t, err, errs.ErrInvalidCoordinateSystem)
}
