package tui

import (
	"strings"
	"testing"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("清蒸鱈魚便當", 5)
	want := "清蒸..."
	if got != want {
		t.Errorf("truncateStr(Chinese, 5) = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("every store is closed today", 12)
	want := "every store\nis closed\ntoday"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if wrapText("   ", 10) != "" {
		t.Error("blank input should wrap to empty")
	}
}

func TestDrawingText(t *testing.T) {
	want := []string{"drawing", "drawing.", "drawing..", "drawing..."}
	for dots, w := range want {
		if got := drawingText(dots); got != w {
			t.Errorf("drawingText(%d) = %q, want %q", dots, got, w)
		}
	}
}

func TestOutcomeLines(t *testing.T) {
	sel := draw.Outcome{
		Kind:     draw.Selected,
		Category: catalog.Lunch,
		Record:   catalog.MealRecord{Store: "Aunt Lin", Name: "Steamed fish", Price: "120"},
	}
	joined := strings.Join(outcomeLines(sel, 40), "\n")
	for _, want := range []string{"Aunt Lin", "Steamed fish", "120 NT$"} {
		if !strings.Contains(joined, want) {
			t.Errorf("selected outcome missing %q", want)
		}
	}

	empty := strings.Join(outcomeLines(draw.Outcome{Kind: draw.Empty}, 80), " ")
	if !strings.Contains(empty, "nothing to draw") {
		t.Errorf("empty outcome = %q", empty)
	}
	closed := strings.Join(outcomeLines(draw.Outcome{Kind: draw.ClosedToday}, 80), " ")
	if !strings.Contains(closed, "closed today") {
		t.Errorf("closed outcome = %q", closed)
	}
}

func TestNewSlotsOrder(t *testing.T) {
	slots := newSlots()
	cats := catalog.Categories()
	if len(slots) != len(cats) {
		t.Fatalf("got %d slots, want %d", len(slots), len(cats))
	}
	for i, s := range slots {
		if s.category != cats[i] || s.key != slotKeys[cats[i]] {
			t.Errorf("slot %d = %q/%q", i, s.category, s.key)
		}
	}
}
