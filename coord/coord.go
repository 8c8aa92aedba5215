// Package coord models the 3D axis conventions splat data can be authored in and derives
// the sign flips that re-express positions, rotations and spherical harmonics between them.
//
// Each convention names the direction of the positive X, Y and Z axes: Left or Right,
// Up or Down, Front or Back. The spz format stores data in Right-Up-Back (RUB).
package coord

import (
	"fmt"
	"strings"

	"github.com/arloliu/spz/errs"
)

// CoordinateSystem identifies an axis convention.
//
// Values 1 through 8 are laid out so that bits 0, 1 and 2 of (value-1) select the
// X (Left/Right), Y (Down/Up) and Z (Back/Front) directions.
type CoordinateSystem uint8

const (
	// Unspecified disables conversion: it aligns with every other system.
	Unspecified CoordinateSystem = iota
	LeftDownBack
	RightDownBack
	LeftUpBack
	RightUpBack
	LeftDownFront
	RightDownFront
	LeftUpFront
	RightUpFront
)

// Well-known conventions.
const (
	// RUB is the storage convention of spz files.
	RUB     = RightUpBack
	ThreeJS = RightUpBack
	PLY     = RightDownFront
	GLB     = LeftUpFront
	Unity   = RightUpFront
)

var longNames = [...]string{
	Unspecified:    "Unspecified",
	LeftDownBack:   "Left-Down-Back",
	RightDownBack:  "Right-Down-Back",
	LeftUpBack:     "Left-Up-Back",
	RightUpBack:    "Right-Up-Back",
	LeftDownFront:  "Left-Down-Front",
	RightDownFront: "Right-Down-Front",
	LeftUpFront:    "Left-Up-Front",
	RightUpFront:   "Right-Up-Front",
}

var shortNames = [...]string{
	Unspecified:    "UNSPECIFIED",
	LeftDownBack:   "LDB",
	RightDownBack:  "RDB",
	LeftUpBack:     "LUB",
	RightUpBack:    "RUB",
	LeftDownFront:  "LDF",
	RightDownFront: "RDF",
	LeftUpFront:    "LUF",
	RightUpFront:   "RUF",
}

// All returns every coordinate system, Unspecified first.
func All() []CoordinateSystem {
	return []CoordinateSystem{
		Unspecified,
		LeftDownBack, RightDownBack, LeftUpBack, RightUpBack,
		LeftDownFront, RightDownFront, LeftUpFront, RightUpFront,
	}
}

// IsValid reports whether c is one of the nine defined values.
func (c CoordinateSystem) IsValid() bool {
	return c <= RightUpFront
}

// String returns the dashed long name, e.g. "Right-Up-Back".
func (c CoordinateSystem) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("CoordinateSystem(%d)", uint8(c))
	}

	return longNames[c]
}

// ShortName returns the three-letter code, e.g. "RUB", or "UNSPECIFIED".
func (c CoordinateSystem) ShortName() string {
	if !c.IsValid() {
		return c.String()
	}

	return shortNames[c]
}

// Parse resolves a coordinate system name.
//
// Short codes ("rdf"), camel case ("RightDownFront"), dashed ("right-down-front") and
// underscored ("RIGHT_DOWN_FRONT") spellings are accepted in any letter case, as are
// "unspecified" and the empty string. The aliases "ply", "glb", "unity" and "threejs"
// resolve to their conventions.
func Parse(s string) (CoordinateSystem, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", ".", "").Replace(key)

	switch key {
	case "", "UNSPECIFIED", "NONE":
		return Unspecified, nil
	case "PLY":
		return PLY, nil
	case "GLB", "GLTF":
		return GLB, nil
	case "UNITY":
		return Unity, nil
	case "THREEJS", "THREE":
		return ThreeJS, nil
	}

	for _, c := range All()[1:] {
		if key == shortNames[c] || key == strings.ReplaceAll(strings.ToUpper(longNames[c]), "-", "") {
			return c, nil
		}
	}

	return Unspecified, fmt.Errorf("%w: %q", errs.ErrInvalidCoordinateSystem, s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) CoordinateSystem {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// MarshalText implements encoding.TextMarshaler using the short code.
func (c CoordinateSystem) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCoordinateSystem, uint8(c))
	}

	return []byte(c.ShortName()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (c *CoordinateSystem) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
