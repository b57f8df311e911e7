package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// loadStatus is the message shown after a load attempt.
func loadStatus(total int, err error) string {
	switch {
	case err != nil:
		return "Failed to load meal data"
	case total > 0:
		return fmt.Sprintf("Loaded %d meals", total)
	default:
		return "Fetched, but there are no meal options yet"
	}
}

func renderStatusBar(status string, width int, searching bool, loading bool) string {
	left := " " + status
	if loading {
		left += " (loading...)"
	}

	right := " ←/→ move  enter draw  r reload  / search  ? help  q quit "
	if searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
