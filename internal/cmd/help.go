package cmd

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
)

// renderExportHelp renders the help text for the export command with lipgloss styling
func renderExportHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Export every object to its own file next to the scene"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fbxbatch export props.gltf"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Pick objects by pattern and write them into one file"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fbxbatch export props.gltf -s 'Crate*' --no-per-object --filename Crates.fbx"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Rename with a custom prefix and target Unreal"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fbxbatch export props.gltf --prefix SK_ --axis unreal -o exports"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Keep the current names, no index"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fbxbatch export props.gltf --no-index"))
	b.WriteString("\n")

	return b.String()
}

const runExampleYAML = `jobs:
  - scene: props.gltf
    select: ["Crate*", "Barrel*"]
    prefix: SM_
    out: exports
    axis: unity
  - scene: characters.glb
    prefix: SK_
    per_object: false
    filename: Characters.fbx
    axis: unreal
`

// renderRunHelp renders the help text for the run command with a
// highlighted job file example
func renderRunHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Job file format"))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Relative scene and output paths resolve against the job file."))
	b.WriteString("\n\n")

	if err := quick.Highlight(&b, runExampleYAML, "yaml", "terminal256", "monokai"); err != nil {
		// Highlighting is cosmetic, fall back to the raw text.
		b.WriteString(runExampleYAML)
	}

	return b.String()
}
