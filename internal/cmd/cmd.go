package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"

	"github.com/skirila/fbxbatch/internal/axis"
	"github.com/skirila/fbxbatch/internal/batch"
	"github.com/skirila/fbxbatch/internal/config"
	"github.com/skirila/fbxbatch/internal/errdefs"
	"github.com/skirila/fbxbatch/internal/fbxout"
	"github.com/skirila/fbxbatch/internal/gltfhost"
	"github.com/skirila/fbxbatch/internal/host"
	"github.com/skirila/fbxbatch/internal/preconditions"
	"github.com/skirila/fbxbatch/internal/ui"
	"github.com/skirila/fbxbatch/version"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging" short:"v"`

	Export     *ExportCmd     `cmd:"" help:"Rename the selected objects and export them to FBX"`
	Plan       *PlanCmd       `cmd:"" help:"Show what an export would rename and write, without touching anything"`
	Run        *RunCmd        `cmd:"" help:"Run the jobs of a YAML job file"`
	Presets    *PresetsCmd    `cmd:"" help:"List the engine axis presets"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion scripts"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
}

type ExportCmd struct {
	Scene    string   `arg:"" help:"Scene file to load (.gltf or .glb)"`
	Select   []string `help:"Glob patterns choosing the objects to export (default: all objects)" short:"s"`
	Prefix   string   `help:"Prefix for the renamed objects" default:"SM_"`
	Index    bool     `help:"Append a numeric index like 001 to each name" default:"true" negatable:""`
	PerOb    bool     `help:"Write one file per object instead of a combined file" name:"per-object" default:"true" negatable:""`
	Out      string   `help:"Output directory, relative paths resolve against the scene file" short:"o" default:"."`
	Filename string   `help:"Filename for the combined file" default:"Export.fbx"`
	Axis     string   `help:"Engine axis preset" enum:"blender,maya,unity,unreal" default:"unity"`
	Yes      bool     `help:"Skip the confirmation step" short:"y"`
}

// Help adds additional help text with examples
func (c *ExportCmd) Help() string {
	return renderExportHelp()
}

func (c *ExportCmd) Run() error {
	scene, opts, err := loadScene(c.Scene, c.Select, batch.Options{
		Prefix:    c.Prefix,
		AddIndex:  c.Index,
		PerObject: c.PerOb,
		Path:      c.Out,
		Filename:  c.Filename,
	}, c.Axis)
	if err != nil {
		return err
	}

	b, err := batch.Prepare(scene, opts)
	if err != nil {
		return err
	}

	printPlan(b)
	if !c.Yes {
		ok, err := confirm(b.FileCount())
		if err != nil {
			return err
		}
		if !ok {
			ui.PrintInfo("Aborted.")
			return nil
		}
	}

	res, err := b.Execute(scene, fbxout.New())
	if err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Renamed %d objects, wrote %d files to %s", res.Renamed, len(res.Files), b.Job.Dir))
	return nil
}

type PlanCmd struct {
	Scene    string   `arg:"" help:"Scene file to load (.gltf or .glb)"`
	Select   []string `help:"Glob patterns choosing the objects to export (default: all objects)" short:"s"`
	Prefix   string   `help:"Prefix for the renamed objects" default:"SM_"`
	Index    bool     `help:"Append a numeric index like 001 to each name" default:"true" negatable:""`
	PerOb    bool     `help:"Write one file per object instead of a combined file" name:"per-object" default:"true" negatable:""`
	Out      string   `help:"Output directory, relative paths resolve against the scene file" short:"o" default:"."`
	Filename string   `help:"Filename for the combined file" default:"Export.fbx"`
	Axis     string   `help:"Engine axis preset" enum:"blender,maya,unity,unreal" default:"unity"`
}

func (c *PlanCmd) Run() error {
	scene, opts, err := loadScene(c.Scene, c.Select, batch.Options{
		Prefix:    c.Prefix,
		AddIndex:  c.Index,
		PerObject: c.PerOb,
		Path:      c.Out,
		Filename:  c.Filename,
	}, c.Axis)
	if err != nil {
		return err
	}

	b, err := batch.Prepare(scene, opts)
	if err != nil {
		return err
	}

	printPlan(b)
	ui.PrintFileCount(b.FileCount())
	ui.PrintKeyValue("Output directory", b.Job.Dir)
	ui.PrintKeyValue("Axis preset", opts.Preset.String())
	return nil
}

type RunCmd struct {
	File string `arg:"" help:"YAML job file to run"`
	Yes  bool   `help:"Skip the confirmation steps" short:"y"`
}

// Help adds additional help text with a job file example
func (c *RunCmd) Help() string {
	return renderRunHelp()
}

func (c *RunCmd) Run() error {
	if err := preconditions.ValidateConfigFile(c.File); err != nil {
		return err
	}

	file, err := config.NewLoader().Load(c.File)
	if err != nil {
		return err
	}

	for i, job := range file.Jobs {
		ui.PrintHeader(fmt.Sprintf("Job %d/%d: %s", i+1, len(file.Jobs), job.Scene))

		scene, opts, err := loadScene(job.Scene, job.Select, batch.Options{
			Prefix:    job.Prefix,
			AddIndex:  job.IndexEnabled(),
			PerObject: job.PerObjectEnabled(),
			Path:      job.Out,
			Filename:  job.Filename,
		}, job.Axis)
		if err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}

		b, err := batch.Prepare(scene, opts)
		if err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}

		printPlan(b)
		if !c.Yes {
			ok, err := confirm(b.FileCount())
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintInfo("Aborted.")
				return nil
			}
		}

		res, err := b.Execute(scene, fbxout.New())
		if err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
		ui.PrintSuccess(fmt.Sprintf("Renamed %d objects, wrote %d files to %s", res.Renamed, len(res.Files), b.Job.Dir))
	}

	return nil
}

type PresetsCmd struct{}

func (c *PresetsCmd) Run() error {
	ui.PrintHeader("Engine axis presets")
	for _, p := range axis.All() {
		conv := p.Convention()
		ui.PrintItem(fmt.Sprintf("%-8s forward %-3s up %-3s", p.String(), conv.Forward, conv.Up))
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// loadScene opens the scene, applies the selection patterns and finishes
// the batch options with the parsed axis preset.
func loadScene(path string, patterns []string, opts batch.Options, axisName string) (*gltfhost.Scene, batch.Options, error) {
	if err := preconditions.ValidateSceneFile(path); err != nil {
		return nil, opts, err
	}

	scene, err := gltfhost.Open(path)
	if err != nil {
		return nil, opts, err
	}

	if err := selectObjects(scene, patterns); err != nil {
		return nil, opts, err
	}

	preset := axis.Default
	if axisName != "" {
		preset, err = axis.Parse(axisName)
		if err != nil {
			return nil, opts, err
		}
	}
	opts.Preset = preset
	return scene, opts, nil
}

// selectObjects selects the objects matching the patterns, or every
// object when no pattern is given. Selection order follows document
// order, grouped by pattern.
func selectObjects(scene host.Scene, patterns []string) error {
	objects := scene.Objects()

	var ids []host.ObjectID
	if len(patterns) == 0 {
		for _, o := range objects {
			ids = append(ids, o.ID)
		}
	} else {
		seen := make(map[host.ObjectID]bool)
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return fmt.Errorf("%w: bad pattern %q: %v", errdefs.ErrInvalidInput, pattern, err)
			}
			for _, o := range objects {
				if g.Match(o.Name) && !seen[o.ID] {
					seen[o.ID] = true
					ids = append(ids, o.ID)
				}
			}
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("%w: no objects match the selection", errdefs.ErrInvalidInput)
	}

	logrus.WithField("selected", len(ids)).Debug("Selection applied")
	scene.SetSelection(ids)
	scene.SetActive(ids[0])
	return nil
}

func printPlan(b *batch.Batch) {
	ui.PrintHeader("Rename plan")
	width := 0
	for _, r := range b.Plan {
		if len(r.OldName) > width {
			width = len(r.OldName)
		}
	}
	for _, r := range b.Plan {
		ui.PrintRenameRow(r.OldName, r.NewName, width)
	}
}

func confirm(fileCount int) (bool, error) {
	word := "files"
	if fileCount == 1 {
		word = "file"
	}
	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("This will generate %d FBX %s. Continue?", fileCount, word)).
		Affirmative("Export").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fbxbatch"),
		kong.Description("Batch rename scene objects and export them to FBX"),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	err := ctx.Run()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
