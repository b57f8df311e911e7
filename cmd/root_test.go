package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
	"github.com/charmbracelet/lipgloss"
)

func TestParseDate(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatal(err)
	}
	// 2026-10-18 01:30 UTC is 09:30 in Taipei
	now := time.Date(2026, 10, 18, 1, 30, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		weekday time.Weekday
		err     bool
	}{
		{"", "2026-10-18 09:30", time.Sunday, false},
		{"2026-10-14", "2026-10-14 09:30", time.Wednesday, false},
		{"2026-10-12", "2026-10-12 09:30", time.Monday, false},
		{"14/10/2026", "", 0, true},
		{"2026-13-01", "", 0, true},
		{"tomorrow", "", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.input, taipei, now)
		if tt.err {
			if err == nil {
				t.Errorf("parseDate(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDate(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if s := got.Format("2006-01-02 15:04"); s != tt.want {
			t.Errorf("parseDate(%q) = %s, want %s", tt.input, s, tt.want)
		}
		if got.Weekday() != tt.weekday {
			t.Errorf("parseDate(%q) weekday = %v, want %v", tt.input, got.Weekday(), tt.weekday)
		}
		if got.Location() != taipei {
			t.Errorf("parseDate(%q) location = %v", tt.input, got.Location())
		}
	}
}

func TestFormatOutcome(t *testing.T) {
	today := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		out  draw.Outcome
		want []string
	}{
		{
			draw.Outcome{Kind: draw.Empty, Category: catalog.Dinner},
			[]string{"Dinner", "2026/10/14 (Wed)", "nothing to draw"},
		},
		{
			draw.Outcome{Kind: draw.ClosedToday, Category: catalog.Snack},
			[]string{"Snack", "closed today"},
		},
		{
			draw.Outcome{Kind: draw.Selected, Category: catalog.Lunch, Record: catalog.MealRecord{Store: "Aunt Lin", Name: "Steamed fish", Price: "120"}},
			[]string{"Lunch", "Store: Aunt Lin", "Item:  Steamed fish", "Price: 120 NT$"},
		},
	}

	for _, tt := range tests {
		got := formatOutcome(tt.out, today)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("formatOutcome(%v) = %q, missing %q", tt.out.Kind, got, w)
			}
		}
	}
}

func TestCategoryNames(t *testing.T) {
	got := strings.Join(categoryNames(), ",")
	if got != "breakfast,lunch,dinner,snack" {
		t.Errorf("categoryNames() = %s", got)
	}
}

func TestFormatStats(t *testing.T) {
	st := index.Stats{Categories: []index.CategoryStats{
		{Category: catalog.Breakfast, Total: 2, OpenToday: 1, Stores: 2},
		{Category: catalog.Lunch, Total: 3, OpenToday: 3, Stores: 1},
	}}
	got := formatStats(st)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), got)
	}
	if f := strings.Fields(lines[3]); len(f) != 3 || f[1] != "5" || f[2] != "4" {
		t.Errorf("total line = %q", lines[3])
	}
}

func TestPrintedColumnsAlignForCJK(t *testing.T) {
	names := []string{"清蒸鱈魚便當", "Tofu rice"}
	w := 0
	for _, n := range names {
		w = max(w, lipgloss.Width(n))
	}
	for _, n := range names {
		if got := lipgloss.Width(pad(n, w) + "|"); got != w+1 {
			t.Errorf("pad(%q) spans %d cells, want %d", n, got-1, w)
		}
	}
}

func TestFormatLoadedAt(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatal(err)
	}
	if got := formatLoadedAt(time.Time{}, taipei); got != "never" {
		t.Errorf("formatLoadedAt(zero) = %q, want never", got)
	}
	at := time.Date(2026, 10, 18, 1, 30, 0, 0, time.UTC)
	if got := formatLoadedAt(at, taipei); got != "2026/10/18 09:30:00" {
		t.Errorf("formatLoadedAt = %q", got)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 2, "abcd"},
		{"便當", 6, "便當  "},
		{"便當", 4, "便當"},
		{"便當", 3, "便當"},
	}
	for _, tt := range tests {
		if got := pad(tt.s, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
