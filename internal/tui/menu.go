package tui

import (
	"fmt"
	"strings"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
)

func renderMenuItem(m index.Meal, width int) string {
	if width < 10 {
		width = 30
	}
	line := menuStoreStyle.Render(truncateStr(m.Store, width/3)) +
		" " + menuItemStyle.Render(truncateStr(m.Name, width/2))
	if m.Price != "" {
		line += " " + menuPriceStyle.Render("· "+m.Price)
	}
	return "  " + line
}

// renderMenu lists the meals open today for the focused slot. Rows past the
// pane height collapse into a "…and N more" line.
func renderMenu(title string, meals []index.Meal, height, width int) string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(title))

	if len(meals) == 0 {
		b.WriteString("\n")
		b.WriteString(lipglossCenter("Nothing open today", width, height-1))
		return b.String()
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	shown := meals
	more := 0
	if len(meals) > visible {
		// Keep the last row for the overflow marker
		shown = meals[:visible-1]
		more = len(meals) - len(shown)
	}
	for _, m := range shown {
		b.WriteString("\n")
		b.WriteString(renderMenuItem(m, width))
	}
	if more > 0 {
		b.WriteString("\n")
		b.WriteString(menuPriceStyle.Render(fmt.Sprintf("  …and %d more", more)))
	}
	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	if height < 0 {
		height = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
