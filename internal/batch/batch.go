// Package batch wires validation, rename planning, renaming, and exporting
// into the single user-triggered operation. Prepare performs every check
// that can fail without touching the scene; Execute mutates it.
package batch

import (
	"fmt"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/errdefs"
	"github.com/skirila/fbxbatch/internal/export"
	"github.com/skirila/fbxbatch/internal/host"
	"github.com/skirila/fbxbatch/internal/rename"
	"github.com/skirila/fbxbatch/internal/selection"
)

// Options mirrors the user-facing panel fields.
type Options struct {
	Prefix    string
	AddIndex  bool
	PerObject bool
	Path      string // destination folder; relative resolves against the project
	Filename  string // combined mode only
	Preset    axis.Preset
}

// Batch is a validated, ready-to-run operation. Between Prepare and Execute
// the caller is expected to confirm the file count with the user.
type Batch struct {
	Plan rename.Plan
	Job  export.Job
}

// Prepare validates opts against the scene's current selection and computes
// the rename plan and export job. It mutates nothing: an empty selection,
// a bad prefix, or an unresolvable destination all surface here, before any
// rename.
func Prepare(s host.Scene, opts Options) (*Batch, error) {
	sel := s.Selected()
	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: no objects selected", errdefs.ErrInvalidInput)
	}

	objects := make([]host.Object, 0, len(sel))
	for _, id := range sel {
		name, err := s.Name(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errdefs.ErrInvalidInput, err)
		}
		objects = append(objects, host.Object{ID: id, Name: name})
	}

	plan, err := rename.NewPlan(objects, opts.Prefix, opts.AddIndex)
	if err != nil {
		return nil, err
	}

	dir, err := export.ResolveDir(s, opts.Path)
	if err != nil {
		return nil, err
	}

	mode := export.Combined
	if opts.PerObject {
		mode = export.PerObject
	}
	return &Batch{
		Plan: plan,
		Job: export.Job{
			Mode:     mode,
			Dir:      dir,
			Filename: opts.Filename,
			Preset:   opts.Preset,
		},
	}, nil
}

// FileCount reports how many files Execute will write: one in combined
// mode, one per planned object otherwise.
func (b *Batch) FileCount() int {
	if b.Job.Mode == export.PerObject {
		return len(b.Plan)
	}
	return 1
}

// Result reports what a run changed and wrote.
type Result struct {
	Renamed int
	Files   []string
}

// Execute renames and exports under one selection guard: the selection and
// active object present before the call are restored on success and on
// every failure. Objects renamed before a later failure keep their new
// names; there is no rollback.
func (b *Batch) Execute(s host.Scene, e host.Exporter) (*Result, error) {
	res := &Result{}
	err := selection.With(s, func() error {
		applied, err := rename.Apply(s, b.Plan)
		res.Renamed = len(applied)
		if err != nil {
			return err
		}

		b.Job.Objects = make([]export.Object, len(applied))
		for i, r := range applied {
			b.Job.Objects[i] = export.Object{ID: r.ID, Name: r.NewName}
		}

		rep, err := b.Job.Run(s, e)
		if rep != nil {
			res.Files = rep.Files
		}
		return err
	})
	return res, err
}
