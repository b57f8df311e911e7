package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`███╗   ███╗███████╗ █████╗ ██╗     ███████╗`,
	`████╗ ████║██╔════╝██╔══██╗██║     ██╔════╝`,
	`██╔████╔██║█████╗  ███████║██║     ███████╗`,
	`██║╚██╔╝██║██╔══╝  ██╔══██║██║     ╚════██║`,
	`██║ ╚═╝ ██║███████╗██║  ██║███████╗███████║`,
	`╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝`,
}

// renderSplash is shown until the first load finishes.
func renderSplash(width, height int, spinnerView, status string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "", "")
	lines = append(lines, spinnerView+" "+labelStyle.Render(status))

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
