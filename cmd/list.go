package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	flagListCategory string
	flagListToday    bool
	flagListSearch   string
	flagListStores   []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the meals in the sheet",
	Long: `Load the meal sheet and print its rows.

Filter by slot with --category, by today's opening days with --today, and by
store or item text with --search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := index.QueryOpts{
			Search: flagListSearch,
			Stores: flagListStores,
		}
		if flagListCategory != "" {
			c, ok := catalog.ParseCategory(flagListCategory)
			if !ok {
				return fmt.Errorf("unknown meal slot %q (want one of %s)", flagListCategory, strings.Join(categoryNames(), ", "))
			}
			opts.Category = c
		}

		s, err := newSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		if flagListToday {
			opts.Days = catalog.Bit(s.today.Weekday())
		}

		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		meals, err := idx.Query(opts)
		if err != nil {
			return fmt.Errorf("querying meals: %w", err)
		}

		if len(meals) == 0 {
			fmt.Println("No meals match.")
			return nil
		}
		printMeals(meals)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-slot totals and what is open today",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		st, err := idx.Stats(s.today.Weekday())
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Source: %s\n", s.cfg.Source.URL)
		fmt.Printf("Loaded: %s\n", formatLoadedAt(st.LoadedAt, s.today.Location()))
		fmt.Printf("Today:  %s\n\n", s.today.Format("2006/01/02 (Mon)"))
		fmt.Print(formatStats(st))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListCategory, "category", "", "only this slot (breakfast, lunch, dinner, snack)")
	listCmd.Flags().BoolVar(&flagListToday, "today", false, "only stores open today")
	listCmd.Flags().StringVar(&flagListSearch, "search", "", "match store or item text")
	listCmd.Flags().StringSliceVar(&flagListStores, "store", nil, "only these stores (repeatable)")
}

func printMeals(meals []index.Meal) {
	storeW, nameW := len("STORE"), len("ITEM")
	for _, m := range meals {
		storeW = max(storeW, lipgloss.Width(m.Store))
		nameW = max(nameW, lipgloss.Width(m.Name))
	}

	fmt.Printf("%-9s  %s  %s  %-7s  %s\n", "SLOT", pad("STORE", storeW), pad("ITEM", nameW), "PRICE", "DAYS")
	for _, m := range meals {
		fmt.Printf("%-9s  %s  %s  %-7s  %s\n", m.Category, pad(m.Store, storeW), pad(m.Name, nameW), m.Price, m.Days)
	}
}

func formatStats(st index.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %6s %11s %7s\n", "SLOT", "MEALS", "OPEN TODAY", "STORES")
	total, open := 0, 0
	for _, c := range st.Categories {
		fmt.Fprintf(&b, "%-10s %6d %11d %7d\n", c.Category.Title(), c.Total, c.OpenToday, c.Stores)
		total += c.Total
		open += c.OpenToday
	}
	fmt.Fprintf(&b, "%-10s %6d %11d\n", "Total", total, open)
	return b.String()
}

func formatLoadedAt(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "never"
	}
	return t.In(loc).Format("2006/01/02 15:04:05")
}

// pad right-pads to a terminal cell width; CJK runes take two cells.
func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
