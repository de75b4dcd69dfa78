package fbxout

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mogaika/fbx"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/host"
	"github.com/skirila/fbxbatch/internal/host/hosttest"
)

// meshScene backs a fake scene with a single triangle per object.
type meshScene struct {
	*hosttest.Scene
}

func (m *meshScene) Mesh(id host.ObjectID) (*host.Mesh, error) {
	return &host.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	}, nil
}

func (m *meshScene) Transform(id host.ObjectID) host.Transform {
	return host.Identity()
}

func findProperty(node *fbx.Node, name string) []interface{} {
	props := node.GetNode("Properties70")
	if props == nil {
		return nil
	}
	for _, p := range props.GetNodes("P") {
		if p.Properties[0].(string) == name {
			return p.Properties
		}
	}
	return nil
}

func TestGlobalSettings_Unity(t *testing.T) {
	b := newBuilder(axis.Unity.Convention().GlobalSettings())
	gs := b.f.Root.GetNode("GlobalSettings")
	if gs == nil {
		t.Fatal("Document has no GlobalSettings node")
	}

	tests := []struct {
		name string
		want int32
	}{
		{"UpAxis", 1},
		{"UpAxisSign", 1},
		{"FrontAxis", 2},
		{"FrontAxisSign", -1},
		{"CoordAxis", 0},
		{"CoordAxisSign", 1},
	}
	for _, tt := range tests {
		props := findProperty(gs, tt.name)
		if props == nil {
			t.Errorf("GlobalSettings misses %s", tt.name)
			continue
		}
		if got := props[4].(int32); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, got, tt.want)
		}
	}

	scale := findProperty(gs, "UnitScaleFactor")
	if scale == nil || scale[4].(float64) != 1.0 {
		t.Errorf("UnitScaleFactor = %v, want 1.0", scale)
	}
}

func TestGeometry_PolygonIndexEncoding(t *testing.T) {
	b := newBuilder(axis.Unity.Convention().GlobalSettings())
	mesh := &host.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Indices:   []uint32{0, 1, 2, 2, 1, 3},
	}

	geometry := b.geometry(b.nextID(), "Quad", mesh)

	indexes := geometry.GetNode("PolygonVertexIndex").Properties[0].([]int32)
	want := []int32{0, 1, ^int32(2), 2, 1, ^int32(3)}
	if len(indexes) != len(want) {
		t.Fatalf("Index count = %d, want %d", len(indexes), len(want))
	}
	for i := range want {
		if indexes[i] != want[i] {
			t.Errorf("index[%d] = %d, want %d", i, indexes[i], want[i])
		}
	}

	vertices := geometry.GetNode("Vertices").Properties[0].([]float64)
	if len(vertices) != 12 {
		t.Errorf("Vertex floats = %d, want 12", len(vertices))
	}
}

func TestGeometry_NormalsAreOptional(t *testing.T) {
	b := newBuilder(axis.Unity.Convention().GlobalSettings())
	mesh := &host.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}

	geometry := b.geometry(b.nextID(), "Tri", mesh)
	if geometry.GetNode("LayerElementNormal") != nil {
		t.Error("Geometry without normals should not carry a normal layer")
	}

	mesh.Normals = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	geometry = b.geometry(b.nextID(), "Tri", mesh)
	if geometry.GetNode("LayerElementNormal") == nil {
		t.Error("Geometry with normals should carry a normal layer")
	}
}

func TestFinish_DefinitionCounts(t *testing.T) {
	b := newBuilder(axis.Unity.Convention().GlobalSettings())
	mesh := &host.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	b.addObject("A", mesh, host.Identity())
	b.addObject("B", mesh, host.Identity())
	b.finish()

	definitions := b.f.Root.GetNode("Definitions")
	if got := definitions.GetNode("Count").Properties[0].(int32); got != 5 {
		t.Errorf("Total definition count = %d, want 5 (settings + 2 models + 2 geometries)", got)
	}
	for _, objectType := range definitions.GetNodes("ObjectType") {
		name := objectType.Properties[0].(string)
		count := objectType.GetNode("Count").Properties[0].(int32)
		switch name {
		case "Model", "Geometry":
			if count != 2 {
				t.Errorf("%s count = %d, want 2", name, count)
			}
		case "GlobalSettings":
			if count != 1 {
				t.Errorf("GlobalSettings count = %d, want 1", count)
			}
		}
	}
}

func TestAddObject_Connections(t *testing.T) {
	b := newBuilder(axis.Unity.Convention().GlobalSettings())
	mesh := &host.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	b.addObject("Cube", mesh, host.Identity())

	connections := b.connections.GetNodes("C")
	if len(connections) != 2 {
		t.Fatalf("Expected 2 connections, got %d", len(connections))
	}
	// Model hangs off the document root, geometry off the model.
	if parent := connections[0].Properties[2].(int64); parent != 0 {
		t.Errorf("Model parent = %d, want root (0)", parent)
	}
	modelID := connections[0].Properties[1].(int64)
	if parent := connections[1].Properties[2].(int64); parent != modelID {
		t.Errorf("Geometry parent = %d, want model %d", parent, modelID)
	}
}

func TestEulerDegrees(t *testing.T) {
	x, y, z := eulerDegrees([4]float32{0, 0, 0, 1})
	if x != 0 || y != 0 || z != 0 {
		t.Errorf("Identity quaternion = (%v, %v, %v), want zero angles", x, y, z)
	}

	// 90 degrees around Z.
	s := float32(math.Sin(math.Pi / 4))
	c := float32(math.Cos(math.Pi / 4))
	_, _, z = eulerDegrees([4]float32{0, 0, s, c})
	if math.Abs(z-90) > 1e-4 {
		t.Errorf("Z rotation = %v, want 90", z)
	}
}

func TestExport_WritesFile(t *testing.T) {
	scene := &meshScene{hosttest.NewScene("SM_001_Cube")}
	scene.SetSelection([]host.ObjectID{0})
	scene.SetActive(0)

	path := filepath.Join(t.TempDir(), "SM_001_Cube.fbx")
	if err := New().Export(scene, path, axis.Unity); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Exported file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Exported file is empty")
	}
}

func TestExport_RequiresMeshData(t *testing.T) {
	scene := hosttest.NewScene("Cube")
	scene.SetSelection([]host.ObjectID{0})

	err := New().Export(scene, filepath.Join(t.TempDir(), "out.fbx"), axis.Unity)
	if err == nil {
		t.Fatal("Export() expected error for a scene without mesh data")
	}
}

func TestExport_EmptySelection(t *testing.T) {
	scene := &meshScene{hosttest.NewScene("Cube")}
	err := New().Export(scene, filepath.Join(t.TempDir(), "out.fbx"), axis.Unity)
	if err == nil {
		t.Fatal("Export() expected error for an empty selection")
	}
}
