// Package selection implements the scoped guard that restores the host's
// selection and active object on every exit path. Every rename and export
// call in the pipeline runs inside this guard.
package selection

import "github.com/skirila/fbxbatch/internal/host"

// Snapshot is the selection state captured before any mutation.
type Snapshot struct {
	Selected []host.ObjectID
	Active   host.ObjectID
}

// Capture records the scene's current selection and active object.
func Capture(s host.Scene) Snapshot {
	sel := s.Selected()
	cp := make([]host.ObjectID, len(sel))
	copy(cp, sel)
	return Snapshot{Selected: cp, Active: s.Active()}
}

// Restore reapplies the snapshot to the scene.
func (snap Snapshot) Restore(s host.Scene) {
	s.SetSelection(snap.Selected)
	s.SetActive(snap.Active)
}

// With captures the selection state, runs fn, and restores the state when
// fn returns, also when it returns an error or panics. fn's error is
// returned unchanged, never swallowed.
func With(s host.Scene, fn func() error) error {
	snap := Capture(s)
	defer snap.Restore(s)
	return fn()
}
