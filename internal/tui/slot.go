package tui

import (
	"strings"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
)

type slotState int

const (
	slotIdle slotState = iota
	slotDrawing
	slotShown
)

// slot is the on-screen state of one draw control.
type slot struct {
	category catalog.Category
	key      string
	state    slotState
	token    draw.Token
	pending  draw.Outcome
	result   draw.Outcome
	dots     int
}

// slotKeys maps the shortcut key to each control.
var slotKeys = map[catalog.Category]string{
	catalog.Breakfast: "b",
	catalog.Lunch:     "l",
	catalog.Dinner:    "d",
	catalog.Snack:     "s",
}

func newSlots() []*slot {
	var out []*slot
	for _, c := range catalog.Categories() {
		out = append(out, &slot{category: c, key: slotKeys[c]})
	}
	return out
}

func drawingText(dots int) string {
	return "drawing" + strings.Repeat(".", dots)
}

// outcomeLines renders a finished draw.
func outcomeLines(o draw.Outcome, width int) []string {
	switch o.Kind {
	case draw.Empty:
		return []string{slotErrorStyle.Render(wrapText("Nothing is listed for this slot, so there is nothing to draw", width))}
	case draw.ClosedToday:
		return []string{slotErrorStyle.Render(wrapText("Every store is closed today", width))}
	}
	r := o.Record
	price := r.Price
	if price != "" {
		price += " NT$"
	}
	return []string{
		slotLabelStyle.Render("Store"),
		slotValueStyle.Render(truncateStr(r.Store, width)),
		slotLabelStyle.Render("Item"),
		slotValueStyle.Render(truncateStr(r.Name, width)),
		slotLabelStyle.Render("Price"),
		slotValueStyle.Render(truncateStr(price, width)),
	}
}

func renderSlot(s *slot, active bool, width, height int) string {
	inner := width - 4 // border + padding
	if inner < 8 {
		inner = 8
	}

	title := slotKeyStyle.Render("["+s.key+"] ") + slotTitleStyle.Render(s.category.Title())
	lines := []string{title, ""}

	switch s.state {
	case slotIdle:
		lines = append(lines, slotHintStyle.Render(wrapText("press "+s.key+" to draw", inner)))
	case slotDrawing:
		lines = append(lines, slotDrawingStyle.Render(drawingText(s.dots)))
	case slotShown:
		lines = append(lines, outcomeLines(s.result, inner)...)
	}

	style := slotStyle
	if active {
		style = slotActiveStyle
	}
	return style.Width(width - 2).Height(height).Render(strings.Join(lines, "\n"))
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
