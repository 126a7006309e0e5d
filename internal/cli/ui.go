package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner(w io.Writer, dark bool) {
	titleColor, taglineColor := lipgloss.Color("#16A085"), lipgloss.Color("#3B82F6")
	if dark {
		titleColor, taglineColor = lipgloss.Color("#1ABC9C"), lipgloss.Color("#60A5FA")
	}

	welcomeStyle := lipgloss.NewStyle().
		Foreground(titleColor).
		Bold(true).
		Align(lipgloss.Center).
		Width(80).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(titleColor)

	taglineStyle := lipgloss.NewStyle().
		Foreground(taglineColor).
		Italic(true).
		Align(lipgloss.Center).
		Width(82).
		MarginBottom(1)

	fmt.Fprintln(w, welcomeStyle.Render(fmt.Sprintf("📈 IndexStats v%s", Version)))
	fmt.Fprintln(w, taglineStyle.Render("Opening scenarios and close statistics for every tracked ticker"))
}

// ClearScreen clears the terminal screen
func ClearScreen(w io.Writer) {
	if os.Getenv("INDEXSTATS_NO_CLEAR") != "" || !isStdout(w) {
		return
	}
	fmt.Fprint(w, "\033[2J\033[H")
}
