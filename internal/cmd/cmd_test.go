package cmd

import (
	"testing"

	"github.com/skirila/fbxbatch/internal/errdefs"
	"github.com/skirila/fbxbatch/internal/host/hosttest"
)

func TestSelectObjects_NoPatternsSelectsEverything(t *testing.T) {
	scene := hosttest.NewScene("Crate_A", "Crate_B", "Barrel")

	if err := selectObjects(scene, nil); err != nil {
		t.Fatalf("selectObjects() error = %v", err)
	}
	if sel := scene.Selected(); len(sel) != 3 {
		t.Errorf("Selected %d objects, want 3", len(sel))
	}
	if scene.Active() != 0 {
		t.Errorf("Active = %v, want the first object", scene.Active())
	}
}

func TestSelectObjects_Patterns(t *testing.T) {
	scene := hosttest.NewScene("Crate_A", "Barrel", "Crate_B")

	if err := selectObjects(scene, []string{"Crate*"}); err != nil {
		t.Fatalf("selectObjects() error = %v", err)
	}
	sel := scene.Selected()
	if len(sel) != 2 || sel[0] != 0 || sel[1] != 2 {
		t.Errorf("Selected() = %v, want [0 2]", sel)
	}
}

func TestSelectObjects_PatternsDoNotDuplicate(t *testing.T) {
	scene := hosttest.NewScene("Crate_A", "Crate_B")

	if err := selectObjects(scene, []string{"Crate*", "*_A"}); err != nil {
		t.Fatalf("selectObjects() error = %v", err)
	}
	if sel := scene.Selected(); len(sel) != 2 {
		t.Errorf("Selected() = %v, want each object once", sel)
	}
}

func TestSelectObjects_NoMatch(t *testing.T) {
	scene := hosttest.NewScene("Crate_A")

	err := selectObjects(scene, []string{"Rock*"})
	if !errdefs.IsInvalidInput(err) {
		t.Fatalf("selectObjects() error = %v, want InvalidInput kind", err)
	}
	if sel := scene.Selected(); len(sel) != 0 {
		t.Errorf("Selection changed to %v on a failed match", sel)
	}
}

func TestSelectObjects_BadPattern(t *testing.T) {
	scene := hosttest.NewScene("Crate_A")

	err := selectObjects(scene, []string{"[unclosed"})
	if !errdefs.IsInvalidInput(err) {
		t.Fatalf("selectObjects() error = %v, want InvalidInput kind", err)
	}
}

func TestSelectObjects_EmptyScene(t *testing.T) {
	scene := hosttest.NewScene()

	err := selectObjects(scene, nil)
	if !errdefs.IsInvalidInput(err) {
		t.Fatalf("selectObjects() error = %v, want InvalidInput kind", err)
	}
}
