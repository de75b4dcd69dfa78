package selection

import (
	"errors"
	"testing"

	"github.com/skirila/fbxbatch/internal/host"
	"github.com/skirila/fbxbatch/internal/host/hosttest"
)

func sameIDs(a, b []host.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWith_RestoresOnSuccess(t *testing.T) {
	scene := hosttest.NewScene("Cube", "Sphere", "Cone")
	scene.SetSelection([]host.ObjectID{2, 0})
	scene.SetActive(2)

	err := With(scene, func() error {
		scene.SetSelection([]host.ObjectID{1})
		scene.SetActive(1)
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	if !sameIDs(scene.Selected(), []host.ObjectID{2, 0}) {
		t.Errorf("Selection = %v, want [2 0]", scene.Selected())
	}
	if scene.Active() != 2 {
		t.Errorf("Active = %v, want 2", scene.Active())
	}
}

func TestWith_RestoresAndPropagatesError(t *testing.T) {
	scene := hosttest.NewScene("Cube", "Sphere")
	scene.SetSelection([]host.ObjectID{0})
	scene.SetActive(0)

	boom := errors.New("exporter blew up")
	err := With(scene, func() error {
		scene.SetSelection([]host.ObjectID{1})
		scene.SetActive(1)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("With() error = %v, want the body's error unchanged", err)
	}

	if !sameIDs(scene.Selected(), []host.ObjectID{0}) {
		t.Errorf("Selection = %v, want [0]", scene.Selected())
	}
	if scene.Active() != 0 {
		t.Errorf("Active = %v, want 0", scene.Active())
	}
}

func TestWith_RestoresOnPanic(t *testing.T) {
	scene := hosttest.NewScene("Cube")
	scene.SetSelection([]host.ObjectID{0})
	scene.SetActive(0)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected the panic to propagate")
			}
		}()
		_ = With(scene, func() error {
			scene.SetSelection(nil)
			scene.SetActive(host.None)
			panic("host went away")
		})
	}()

	if !sameIDs(scene.Selected(), []host.ObjectID{0}) {
		t.Errorf("Selection = %v, want [0]", scene.Selected())
	}
	if scene.Active() != 0 {
		t.Errorf("Active = %v, want 0", scene.Active())
	}
}

func TestWith_EmptySnapshotRestoresEmpty(t *testing.T) {
	scene := hosttest.NewScene("Cube")

	err := With(scene, func() error {
		scene.SetSelection([]host.ObjectID{0})
		scene.SetActive(0)
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	if len(scene.Selected()) != 0 {
		t.Errorf("Selection = %v, want empty", scene.Selected())
	}
	if scene.Active() != host.None {
		t.Errorf("Active = %v, want None", scene.Active())
	}
}
