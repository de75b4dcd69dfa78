// Package host declares the capability surface this tool needs from a
// hosting 3D application: object enumeration, display names, selection
// state, and an exporter. The live scene graph is passed in explicitly
// rather than reached as ambient state, so every piece of the pipeline can
// run against a fake scene in tests.
package host

import "github.com/skirila/fbxbatch/internal/axis"

// ObjectID is a stable handle to a scene object for the lifetime of a
// session.
type ObjectID int

// None marks the absence of an object, e.g. no active object.
const None ObjectID = -1

// Object pairs a handle with the object's current display name.
type Object struct {
	ID   ObjectID
	Name string
}

// Scene is the host's object list and selection model.
type Scene interface {
	// Objects returns every exportable object, in scene order.
	Objects() []Object

	// Selected returns the current selection in UI order.
	Selected() []ObjectID

	// Active returns the active object, or None.
	Active() ObjectID

	SetSelection(ids []ObjectID)
	SetActive(id ObjectID)

	// Name returns the display name of id.
	Name(id ObjectID) (string, error)

	// SetName renames id and returns the name the host actually applied,
	// which may differ from the requested one when the host resolves a
	// collision.
	SetName(id ObjectID, name string) (string, error)

	// ProjectDir returns the directory the project is saved in and whether
	// the project has been saved at all. Relative export paths resolve
	// against it.
	ProjectDir() (string, bool)
}

// Exporter writes the scene's currently selected objects to path using the
// given axis convention. The selection scope is implicit, exactly as with a
// host application's built-in exporter.
type Exporter interface {
	Export(scene Scene, path string, preset axis.Preset) error
}

// Mesh is triangle geometry handed from a scene to an exporter. Indices
// form triangles; Normals is either empty or parallel to Positions.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// Transform is an object's local TRS. Rotation is an XYZW quaternion.
type Transform struct {
	Translation [3]float32
	Rotation    [4]float32
	Scale       [3]float32
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// MeshSource is implemented by scenes that can surface geometry. Exporters
// that embed geometry in the output require it.
type MeshSource interface {
	Mesh(id ObjectID) (*Mesh, error)
	Transform(id ObjectID) Transform
}
