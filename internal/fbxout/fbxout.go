// Package fbxout writes the selected objects of a scene to a binary
// FBX 7.4 file.
package fbxout

import (
	"math"
	"os"
	"time"

	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/host"
)

const creator = "fbxbatch FBX exporter"

var fileID = []byte{
	0x5b, 0x1c, 0xf0, 0x84, 0x7e, 0x33, 0xa1, 0x90,
	0x2d, 0x6f, 0xc4, 0x58, 0x9a, 0x0b, 0x37, 0xe2}

// Exporter implements host.Exporter on top of the binary FBX writer.
// The scene must also provide mesh data through host.MeshSource.
type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// Export writes the currently selected objects of the scene to path.
func (e *Exporter) Export(scene host.Scene, path string, preset axis.Preset) error {
	source, ok := scene.(host.MeshSource)
	if !ok {
		return errors.Errorf("scene provides no mesh data")
	}

	selected := scene.Selected()
	if len(selected) == 0 {
		return errors.Errorf("nothing selected to export")
	}

	b := newBuilder(preset.Convention().GlobalSettings())
	for _, id := range selected {
		name, err := scene.Name(id)
		if err != nil {
			return errors.Wrapf(err, "failed to look up object %d", id)
		}
		mesh, err := source.Mesh(id)
		if err != nil {
			return errors.Wrapf(err, "failed to read mesh of %q", name)
		}
		b.addObject(name, mesh, source.Transform(id))
	}
	b.finish()

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"objects": len(selected),
		"axis":    preset,
	}).Debug("Writing FBX file")

	w, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer w.Close()

	if err := fbx.Write(w, b.f); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// builder assembles one FBX document.
type builder struct {
	f      *fbx.FBX
	lastID int64

	objects     *fbx.Node
	connections *fbx.Node
	models      int32
	geometries  int32
}

func newBuilder(gs axis.GlobalSettings) *builder {
	b := &builder{
		f:           fbx.NewFBX(7400),
		lastID:      1000000,
		objects:     bfbx73.Objects(),
		connections: bfbx73.Connections(),
	}
	b.createHeaders(gs)
	return b
}

func (b *builder) nextID() int64 {
	b.lastID++
	return b.lastID
}

func (b *builder) createHeaders(gs axis.GlobalSettings) {
	now := time.Now()
	b.f.Root.AddNodes(
		bfbx73.FBXHeaderExtension().AddNodes(
			bfbx73.FBXHeaderVersion(1003),
			bfbx73.FBXVersion(7400),
			bfbx73.CreationTimeStamp().AddNodes(
				bfbx73.Version(1000),
				bfbx73.Year(int32(now.Year())),
				bfbx73.Month(int32(now.Month())),
				bfbx73.Day(int32(now.Day())),
				bfbx73.Hour(int32(now.Hour())),
				bfbx73.Minute(int32(now.Minute())),
				bfbx73.Second(int32(now.Second())),
				bfbx73.Millisecond(0),
			),
			bfbx73.Creator(creator),
		),
		bfbx73.FileId(fileID),
		bfbx73.CreationTime(now.Format("2006-01-02 15:04:05:000")),
		bfbx73.Creator(creator),
		b.globalSettings(gs),
		bfbx73.Documents().AddNodes(
			bfbx73.Count(1),
			bfbx73.Document(b.nextID(), "Scene", "Scene").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("SourceObject", "object", "", ""),
					bfbx73.P("ActiveAnimStackName", "KString", "", "", ""),
				),
				bfbx73.RootNode(0),
			),
		),
		bfbx73.References(),
		b.definitions(),
		b.objects,
		b.connections,
		bfbx73.Takes().AddNodes(
			bfbx73.Current(""),
		),
	)
}

func (b *builder) globalSettings(gs axis.GlobalSettings) *fbx.Node {
	return bfbx73.GlobalSettings().AddNodes(
		bfbx73.Version(1000),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("UpAxis", "int", "Integer", "", gs.UpAxis),
			bfbx73.P("UpAxisSign", "int", "Integer", "", gs.UpAxisSign),
			bfbx73.P("FrontAxis", "int", "Integer", "", gs.FrontAxis),
			bfbx73.P("FrontAxisSign", "int", "Integer", "", gs.FrontAxisSign),
			bfbx73.P("CoordAxis", "int", "Integer", "", gs.CoordAxis),
			bfbx73.P("CoordAxisSign", "int", "Integer", "", gs.CoordAxisSign),
			bfbx73.P("OriginalUpAxis", "int", "Integer", "", gs.UpAxis),
			bfbx73.P("OriginalUpAxisSign", "int", "Integer", "", gs.UpAxisSign),
			bfbx73.P("UnitScaleFactor", "double", "Number", "", gs.UnitScaleFactor),
			bfbx73.P("OriginalUnitScaleFactor", "double", "Number", "", gs.UnitScaleFactor),
			bfbx73.P("AmbientColor", "ColorRGB", "Color", "", float64(0), float64(0), float64(0)),
		),
	)
}

func (b *builder) definitions() *fbx.Node {
	return bfbx73.Definitions().AddNodes(
		bfbx73.Version(100),
		bfbx73.Count(1),
		bfbx73.ObjectType("GlobalSettings").AddNodes(
			bfbx73.Count(1),
		),
		bfbx73.ObjectType("Model").AddNodes(
			bfbx73.Count(0),
			bfbx73.PropertyTemplate("FbxNode").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("QuaternionInterpolate", "enum", "", "", int32(0)),
					bfbx73.P("Show", "bool", "", "", int32(1)),
					bfbx73.P("Lcl Translation", "Lcl Translation", "", "A", float64(0), float64(0), float64(0)),
					bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
					bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
					bfbx73.P("Visibility", "Visibility", "", "A", float64(1)),
					bfbx73.P("Visibility Inheritance", "Visibility Inheritance", "", "", int32(1)),
				),
			),
		),
		bfbx73.ObjectType("Geometry").AddNodes(
			bfbx73.Count(0),
			bfbx73.PropertyTemplate("FbxMesh").AddNodes(
				bfbx73.Properties70().AddNodes(
					bfbx73.P("Color", "ColorRGB", "Color", "", float64(1), float64(1), float64(1)),
					bfbx73.P("Primary Visibility", "bool", "", "", int32(1)),
					bfbx73.P("Casts Shadows", "bool", "", "", int32(1)),
					bfbx73.P("Receive Shadows", "bool", "", "", int32(1)),
				),
			),
		),
	)
}

// addObject appends one model node with its geometry and wires both into
// the connection table.
func (b *builder) addObject(name string, mesh *host.Mesh, transform host.Transform) {
	modelID := b.nextID()
	geometryID := b.nextID()

	b.objects.AddNodes(
		b.model(modelID, name, transform),
		b.geometry(geometryID, name, mesh),
	)
	b.connections.AddNodes(
		bfbx73.C("OO", modelID, 0),
		bfbx73.C("OO", geometryID, modelID),
	)
	b.models++
	b.geometries++
}

func (b *builder) model(id int64, name string, t host.Transform) *fbx.Node {
	rx, ry, rz := eulerDegrees(t.Rotation)
	return bfbx73.Model(id, name+"\x00\x01Model", "Mesh").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("InheritType", "enum", "", "", int32(1)),
			bfbx73.P("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A",
				float64(t.Translation[0]), float64(t.Translation[1]), float64(t.Translation[2])),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", rx, ry, rz),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A",
				float64(t.Scale[0]), float64(t.Scale[1]), float64(t.Scale[2])),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)
}

func (b *builder) geometry(id int64, name string, mesh *host.Mesh) *fbx.Node {
	vertices := make([]float64, 0, len(mesh.Positions)*3)
	for _, p := range mesh.Positions {
		vertices = append(vertices, float64(p[0]), float64(p[1]), float64(p[2]))
	}

	// The last index of each polygon is stored bitwise negated.
	indexes := make([]int32, len(mesh.Indices))
	for i, idx := range mesh.Indices {
		if i%3 == 2 {
			indexes[i] = ^int32(idx)
		} else {
			indexes[i] = int32(idx)
		}
	}

	layer := bfbx73.Layer(0).AddNodes(
		bfbx73.Version(100),
	)
	geometry := bfbx73.Geometry(id, name+"\x00\x01Geometry", "Mesh").AddNodes(
		bfbx73.GeometryVersion(124),
		bfbx73.Vertices(vertices),
		bfbx73.PolygonVertexIndex(indexes),
		layer,
	)

	if len(mesh.Normals) > 0 {
		normals := make([]float64, 0, len(mesh.Normals)*3)
		for _, n := range mesh.Normals {
			normals = append(normals, float64(n[0]), float64(n[1]), float64(n[2]))
		}
		geometry.AddNode(
			bfbx73.LayerElementNormal(0).AddNodes(
				bfbx73.Version(101),
				bfbx73.Name(""),
				bfbx73.MappingInformationType("ByVertice"),
				bfbx73.ReferenceInformationType("Direct"),
				bfbx73.Normals(normals),
			),
		)
		layer.AddNode(
			bfbx73.LayerElement().AddNodes(
				bfbx73.Type("LayerElementNormal"),
				bfbx73.TypedIndex(0),
			),
		)
	}

	return geometry
}

// finish updates the definition counts to match the added objects.
func (b *builder) finish() {
	definitions := b.f.Root.GetNode("Definitions")

	total := int32(1) + b.models + b.geometries // 1 for GlobalSettings
	definitions.GetNode("Count").Properties[0] = total

	for _, objectType := range definitions.GetNodes("ObjectType") {
		switch objectType.Properties[0].(string) {
		case "Model":
			objectType.GetNode("Count").Properties[0] = b.models
		case "Geometry":
			objectType.GetNode("Count").Properties[0] = b.geometries
		}
	}
}

// eulerDegrees converts an XYZW quaternion to XYZ Euler angles in degrees.
func eulerDegrees(q [4]float32) (x, y, z float64) {
	qx, qy, qz, qw := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])

	sinX := 2 * (qw*qx + qy*qz)
	cosX := 1 - 2*(qx*qx+qy*qy)
	x = math.Atan2(sinX, cosX)

	sinY := 2 * (qw*qy - qz*qx)
	if math.Abs(sinY) >= 1 {
		y = math.Copysign(math.Pi/2, sinY)
	} else {
		y = math.Asin(sinY)
	}

	sinZ := 2 * (qw*qz + qx*qy)
	cosZ := 1 - 2*(qy*qy+qz*qz)
	z = math.Atan2(sinZ, cosZ)

	const degrees = 180 / math.Pi
	return x * degrees, y * degrees, z * degrees
}
