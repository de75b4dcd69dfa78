// Package hosttest provides an in-memory scene and a recording exporter for
// exercising the pipeline without a real host application.
package hosttest

import (
	"fmt"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/host"
)

// Scene is a fake host scene. Object IDs are assigned in construction order
// starting at 0.
type Scene struct {
	order      []host.ObjectID
	names      map[host.ObjectID]string
	selected   []host.ObjectID
	active     host.ObjectID
	projectDir string
	saved      bool

	// RenameErr, when set, is returned by every SetName call.
	RenameErr error
}

// NewScene builds a scene containing one object per name, all deselected.
func NewScene(names ...string) *Scene {
	s := &Scene{
		names:  make(map[host.ObjectID]string, len(names)),
		active: host.None,
	}
	for i, name := range names {
		id := host.ObjectID(i)
		s.order = append(s.order, id)
		s.names[id] = name
	}
	return s
}

// SetProjectDir marks the project as saved under dir.
func (s *Scene) SetProjectDir(dir string) {
	s.projectDir = dir
	s.saved = true
}

func (s *Scene) Objects() []host.Object {
	objs := make([]host.Object, 0, len(s.order))
	for _, id := range s.order {
		objs = append(objs, host.Object{ID: id, Name: s.names[id]})
	}
	return objs
}

func (s *Scene) Selected() []host.ObjectID {
	cp := make([]host.ObjectID, len(s.selected))
	copy(cp, s.selected)
	return cp
}

func (s *Scene) Active() host.ObjectID { return s.active }

func (s *Scene) SetSelection(ids []host.ObjectID) {
	s.selected = make([]host.ObjectID, len(ids))
	copy(s.selected, ids)
}

func (s *Scene) SetActive(id host.ObjectID) { s.active = id }

func (s *Scene) Name(id host.ObjectID) (string, error) {
	name, ok := s.names[id]
	if !ok {
		return "", fmt.Errorf("unknown object %d", id)
	}
	return name, nil
}

func (s *Scene) SetName(id host.ObjectID, name string) (string, error) {
	if s.RenameErr != nil {
		return "", s.RenameErr
	}
	if _, ok := s.names[id]; !ok {
		return "", fmt.Errorf("unknown object %d", id)
	}
	s.names[id] = name
	return name, nil
}

func (s *Scene) ProjectDir() (string, bool) { return s.projectDir, s.saved }

// ExportCall records one exporter invocation together with the selection
// state the exporter observed.
type ExportCall struct {
	Path     string
	Preset   axis.Preset
	Selected []host.ObjectID
	Active   host.ObjectID
}

// Exporter records calls instead of writing files. When Err is set, the
// call with index FailAfter (counting from zero) fails with it.
type Exporter struct {
	Calls     []ExportCall
	Err       error
	FailAfter int
}

func (e *Exporter) Export(scene host.Scene, path string, preset axis.Preset) error {
	e.Calls = append(e.Calls, ExportCall{
		Path:     path,
		Preset:   preset,
		Selected: scene.Selected(),
		Active:   scene.Active(),
	})
	if e.Err != nil && len(e.Calls) > e.FailAfter {
		return e.Err
	}
	return nil
}
