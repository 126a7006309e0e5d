// Package display draws the dashboard in the terminal.
package display

import "github.com/charmbracelet/lipgloss"

// Palette is the set of styles one theme renders with.
type Palette struct {
	Name    string
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	OddCell lipgloss.Style
	Border  lipgloss.Style
	Muted   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Alert   lipgloss.Style
}

var lightPalette = Palette{
	Name: "light",
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1F2937")),
	Header: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#1ABC9C")),
	Cell: lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#1F2937")),
	OddCell: lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#1F2937")).
		Background(lipgloss.Color("#F3F4F6")),
	Border: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")),
	Alert: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#EF4444")).
		Foreground(lipgloss.Color("#B91C1C")),
}

var darkPalette = Palette{
	Name: "dark",
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#E5E7EB")),
	Header: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#111827")).
		Background(lipgloss.Color("#16A085")),
	Cell: lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#E5E7EB")),
	OddCell: lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#E5E7EB")).
		Background(lipgloss.Color("#1F2937")),
	Border: lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
	Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34D399")),
	Alert: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F87171")).
		Foreground(lipgloss.Color("#FCA5A5")),
}

// PaletteFor returns the dark palette when dark is set, the light one otherwise.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}
