// Package export coordinates the exporter calls for one batch: a single
// combined file, or one file per object with the selection narrowed to that
// object for each call.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/errdefs"
	"github.com/skirila/fbxbatch/internal/host"
	"github.com/skirila/fbxbatch/internal/selection"
)

// DefaultFilename is used in combined mode when no filename is given.
const DefaultFilename = "Export.fbx"

// Mode selects combined or per-object output.
type Mode int

const (
	Combined Mode = iota
	PerObject
)

func (m Mode) String() string {
	if m == PerObject {
		return "per-object"
	}
	return "combined"
}

// Object is one target of a job, identified by its post-rename name. In
// per-object mode the name also names the output file.
type Object struct {
	ID   host.ObjectID
	Name string
}

// Job describes one batch export: destination, axis convention, and targets.
type Job struct {
	Mode     Mode
	Dir      string // absolute destination directory
	Filename string // combined mode only; DefaultFilename when empty
	Preset   axis.Preset
	Objects  []Object
}

// FileCount reports how many files Run will write, so the caller can
// present a confirmation step before committing.
func (j *Job) FileCount() int {
	if j.Mode == PerObject {
		return len(j.Objects)
	}
	return 1
}

// Report lists the files written by a run. On a per-object failure it
// covers the files written before the failing object; those are kept.
type Report struct {
	Files []string
}

// ResolveDir turns dir into an absolute destination directory, anchoring a
// relative dir at the scene's saved project. It fails with the Path kind
// when no anchor exists or the location is not writable. The directory is
// not created here; Run does that.
func ResolveDir(s host.Scene, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		root, ok := s.ProjectDir()
		if !ok {
			return "", fmt.Errorf("%w: relative path %q requires a saved project; save it first or use an absolute path", errdefs.ErrPath, dir)
		}
		dir = filepath.Join(root, dir)
	}
	if err := checkWritable(dir); err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrPath, err)
	}
	return filepath.Clean(dir), nil
}

// checkWritable walks up to the closest existing ancestor of dir and
// verifies it is a writable directory.
func checkWritable(dir string) error {
	for probe := dir; ; probe = filepath.Dir(probe) {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", probe)
			}
			if info.Mode()&0200 == 0 {
				return fmt.Errorf("%s is not writable", probe)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return err
		}
		if probe == filepath.Dir(probe) {
			return fmt.Errorf("cannot resolve %s", dir)
		}
	}
}

// Run performs the job's exporter calls, each scoped by the selection
// guard. Combined mode selects every object and calls the exporter once;
// per-object mode isolates each object as the sole selection and calls
// once per object. Failures carry the Export kind with the exporter's
// message intact; files written by earlier iterations are left alone.
func (j *Job) Run(s host.Scene, e host.Exporter) (*Report, error) {
	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrPath, err)
	}

	rep := &Report{}
	err := selection.With(s, func() error {
		if j.Mode == PerObject {
			for _, obj := range j.Objects {
				s.SetSelection([]host.ObjectID{obj.ID})
				s.SetActive(obj.ID)
				path := filepath.Join(j.Dir, obj.Name+".fbx")
				if err := e.Export(s, path, j.Preset); err != nil {
					return fmt.Errorf("%w: object %q: %v", errdefs.ErrExport, obj.Name, err)
				}
				rep.Files = append(rep.Files, path)
			}
			return nil
		}

		ids := make([]host.ObjectID, len(j.Objects))
		for i, obj := range j.Objects {
			ids[i] = obj.ID
		}
		s.SetSelection(ids)
		if len(ids) > 0 {
			s.SetActive(ids[0])
		}
		name := j.Filename
		if name == "" {
			name = DefaultFilename
		}
		path := filepath.Join(j.Dir, name)
		if err := e.Export(s, path, j.Preset); err != nil {
			return fmt.Errorf("%w: %v", errdefs.ErrExport, err)
		}
		rep.Files = append(rep.Files, path)
		return nil
	})
	return rep, err
}
