// Package axis holds the coordinate-convention presets for FBX export.
// Each preset fixes the forward and up axes (and unit scale) expected by a
// target application, so an exported file arrives oriented correctly.
package axis

import (
	"fmt"
	"strings"
)

// Preset names a coordinate convention.
type Preset string

const (
	Blender Preset = "blender"
	Maya    Preset = "maya"
	Unity   Preset = "unity"
	Unreal  Preset = "unreal"
)

// Default is the preset used when the user picks nothing.
const Default = Unity

// Axis is a signed world axis such as -Y or Z.
type Axis struct {
	Index int // 0=X, 1=Y, 2=Z
	Sign  int // +1 or -1
}

func (a Axis) String() string {
	name := [3]string{"X", "Y", "Z"}[a.Index]
	if a.Sign < 0 {
		return "-" + name
	}
	return name
}

// Convention is the forward/up axis pair plus unit scale for one preset.
type Convention struct {
	Forward   Axis
	Up        Axis
	UnitScale float64
}

var conventions = map[Preset]Convention{
	Blender: {Forward: Axis{Index: 1, Sign: -1}, Up: Axis{Index: 2, Sign: 1}, UnitScale: 1.0},
	Maya:    {Forward: Axis{Index: 2, Sign: 1}, Up: Axis{Index: 1, Sign: 1}, UnitScale: 1.0},
	Unity:   {Forward: Axis{Index: 2, Sign: -1}, Up: Axis{Index: 1, Sign: 1}, UnitScale: 1.0},
	Unreal:  {Forward: Axis{Index: 0, Sign: 1}, Up: Axis{Index: 2, Sign: 1}, UnitScale: 1.0},
}

// All returns the presets in display order.
func All() []Preset {
	return []Preset{Blender, Maya, Unity, Unreal}
}

// Parse resolves a case-insensitive preset name.
func Parse(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := conventions[p]; !ok {
		return "", fmt.Errorf("unknown axis preset %q (supported: blender, maya, unity, unreal)", s)
	}
	return p, nil
}

// Convention returns the preset's axis configuration. Unknown presets fall
// back to Blender, mirroring the exporter's native convention.
func (p Preset) Convention() Convention {
	if c, ok := conventions[p]; ok {
		return c
	}
	return conventions[Blender]
}

func (p Preset) String() string {
	if len(p) == 0 {
		return string(p)
	}
	return strings.ToUpper(string(p[0])) + string(p[1:])
}

// GlobalSettings is the FBX GlobalSettings encoding of a convention: each
// axis as an index with a separate sign, the coordinate axis being the one
// left over after forward and up.
type GlobalSettings struct {
	UpAxis, UpAxisSign       int32
	FrontAxis, FrontAxisSign int32
	CoordAxis, CoordAxisSign int32
	UnitScaleFactor          float64
}

// GlobalSettings maps the convention onto the FBX header integers.
func (c Convention) GlobalSettings() GlobalSettings {
	coord := 3 - c.Forward.Index - c.Up.Index
	return GlobalSettings{
		UpAxis:          int32(c.Up.Index),
		UpAxisSign:      int32(c.Up.Sign),
		FrontAxis:       int32(c.Forward.Index),
		FrontAxisSign:   int32(c.Forward.Sign),
		CoordAxis:       int32(coord),
		CoordAxisSign:   1,
		UnitScaleFactor: c.UnitScale,
	}
}
