package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FAFAFA"))

	oldNameStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	newNameStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)
)

// PrintTitle prints a major title
func PrintTitle(title string) {
	fmt.Println(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Println(headerStyle.Render("\n▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	fmt.Println(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	fmt.Println(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(stepStyle.Render(infoStyle.Render(message)))
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true)
	fmt.Println(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	separator := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("─────────────────────────────────────────────")
	fmt.Println(separator)
}

// PrintRenameRow prints one old-name → new-name line of a rename plan.
// width is the longest old name in the plan, so the arrows line up.
func PrintRenameRow(oldName, newName string, width int) {
	if width < len(oldName) {
		width = len(oldName)
	}
	padded := oldName + strings.Repeat(" ", width-len(oldName))
	fmt.Println(stepStyle.Render(
		oldNameStyle.Render(padded) + " " + arrow.String() + " " + newNameStyle.Render(newName)))
}

// PrintFileCount prints the number of files an operation will produce
func PrintFileCount(count int) {
	word := "files"
	if count == 1 {
		word = "file"
	}
	fmt.Println(stepStyle.Render(infoStyle.Render(fmt.Sprintf("This will generate %d FBX %s.", count, word))))
}
