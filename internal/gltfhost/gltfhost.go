// Package gltfhost adapts a glTF document to the scene interfaces, so
// objects in .gltf/.glb files can be renamed and exported like objects
// in a live editor session.
package gltfhost

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/sirupsen/logrus"

	"github.com/skirila/fbxbatch/internal/host"
)

// Scene wraps a glTF document. Objects are the mesh-bearing nodes of the
// document. Selection state lives only in memory.
type Scene struct {
	doc  *gltf.Document
	path string

	objects  []host.ObjectID // node indices that carry a mesh
	selected []host.ObjectID
	active   host.ObjectID
}

// Open loads a scene from a .gltf or .glb file.
func Open(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open scene %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve scene path %s", path)
	}
	s := New(doc)
	s.path = abs
	return s, nil
}

// New wraps an in-memory document. The scene has no backing file, so
// relative output paths cannot be resolved against it.
func New(doc *gltf.Document) *Scene {
	s := &Scene{doc: doc, active: host.None}
	for i, node := range doc.Nodes {
		if node.Mesh != nil {
			s.objects = append(s.objects, host.ObjectID(i))
		}
	}
	logrus.WithFields(logrus.Fields{
		"nodes":   len(doc.Nodes),
		"objects": len(s.objects),
	}).Debug("Scene loaded")
	return s
}

// Objects returns the mesh-bearing nodes in document order.
func (s *Scene) Objects() []host.Object {
	objs := make([]host.Object, len(s.objects))
	for i, id := range s.objects {
		objs[i] = host.Object{ID: id, Name: s.nodeName(id)}
	}
	return objs
}

// Selected returns the current selection in selection order.
func (s *Scene) Selected() []host.ObjectID {
	sel := make([]host.ObjectID, len(s.selected))
	copy(sel, s.selected)
	return sel
}

// Active returns the active object, or host.None.
func (s *Scene) Active() host.ObjectID {
	return s.active
}

// SetSelection replaces the selection. Unknown ids are dropped.
func (s *Scene) SetSelection(ids []host.ObjectID) {
	s.selected = s.selected[:0]
	for _, id := range ids {
		if s.isObject(id) {
			s.selected = append(s.selected, id)
		}
	}
}

// SetActive marks one object as active.
func (s *Scene) SetActive(id host.ObjectID) {
	if id == host.None || s.isObject(id) {
		s.active = id
	}
}

// Name returns the display name of an object.
func (s *Scene) Name(id host.ObjectID) (string, error) {
	if !s.isObject(id) {
		return "", fmt.Errorf("no object with id %d", id)
	}
	return s.nodeName(id), nil
}

// SetName renames an object. When another node already carries the
// requested name, a numeric suffix like ".001" is appended, and the
// applied name is returned.
func (s *Scene) SetName(id host.ObjectID, name string) (string, error) {
	if !s.isObject(id) {
		return "", fmt.Errorf("no object with id %d", id)
	}
	applied := s.dedupeName(id, name)
	s.doc.Nodes[int(id)].Name = applied
	if applied != name {
		logrus.WithFields(logrus.Fields{
			"requested": name,
			"applied":   applied,
		}).Debug("Name collision resolved")
	}
	return applied, nil
}

// ProjectDir returns the directory of the scene file, if the scene was
// opened from disk.
func (s *Scene) ProjectDir() (string, bool) {
	if s.path == "" {
		return "", false
	}
	return filepath.Dir(s.path), true
}

// Mesh reads the geometry of an object. All primitives of the node's
// mesh are merged into one vertex and index list.
func (s *Scene) Mesh(id host.ObjectID) (*host.Mesh, error) {
	if !s.isObject(id) {
		return nil, errors.Errorf("no object with id %d", id)
	}
	node := s.doc.Nodes[int(id)]
	gltfMesh := s.doc.Meshes[*node.Mesh]

	mesh := &host.Mesh{}
	for _, primitive := range gltfMesh.Primitives {
		posIdx, ok := primitive.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(s.doc, s.doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read vertices of %s", s.nodeName(id))
		}

		base := uint32(len(mesh.Positions))
		mesh.Positions = append(mesh.Positions, positions...)

		if normIdx, ok := primitive.Attributes["NORMAL"]; ok {
			normals, err := modeler.ReadNormal(s.doc, s.doc.Accessors[normIdx], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read normals of %s", s.nodeName(id))
			}
			mesh.Normals = append(mesh.Normals, normals...)
		}

		if primitive.Indices != nil {
			indices, err := modeler.ReadIndices(s.doc, s.doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read indices of %s", s.nodeName(id))
			}
			for _, idx := range indices {
				mesh.Indices = append(mesh.Indices, idx+base)
			}
		} else {
			// Non-indexed primitive, vertices are already in triangle order.
			for i := range positions {
				mesh.Indices = append(mesh.Indices, base+uint32(i))
			}
		}
	}

	if len(mesh.Positions) == 0 {
		return nil, errors.Errorf("object %s has no vertex data", s.nodeName(id))
	}
	// Normals have to cover every vertex to be usable.
	if len(mesh.Normals) != len(mesh.Positions) {
		mesh.Normals = nil
	}
	return mesh, nil
}

// Transform returns the local transform of an object.
func (s *Scene) Transform(id host.ObjectID) host.Transform {
	if !s.isObject(id) {
		return host.Identity()
	}
	node := s.doc.Nodes[int(id)]
	t := host.Transform{
		Translation: node.Translation,
		Rotation:    node.Rotation,
		Scale:       node.Scale,
	}
	// glTF omits identity components, the zero value means default.
	if t.Rotation == ([4]float32{}) {
		t.Rotation = [4]float32{0, 0, 0, 1}
	}
	if t.Scale == ([3]float32{}) {
		t.Scale = [3]float32{1, 1, 1}
	}
	return t
}

func (s *Scene) isObject(id host.ObjectID) bool {
	for _, o := range s.objects {
		if o == id {
			return true
		}
	}
	return false
}

func (s *Scene) nodeName(id host.ObjectID) string {
	name := s.doc.Nodes[int(id)].Name
	if name == "" {
		name = fmt.Sprintf("Node.%03d", int(id))
	}
	return name
}

// dedupeName appends ".001", ".002", ... until the name is unique among
// all other nodes of the document.
func (s *Scene) dedupeName(id host.ObjectID, name string) string {
	taken := make(map[string]bool, len(s.doc.Nodes))
	for i, node := range s.doc.Nodes {
		if host.ObjectID(i) == id {
			continue
		}
		taken[node.Name] = true
	}
	if !taken[name] {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
