package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:       "draw <breakfast|lunch|dinner|snack>",
	Short:     "Draw one meal for a slot and print it",
	Args:      cobra.ExactArgs(1),
	ValidArgs: categoryNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := catalog.ParseCategory(args[0])
		if !ok {
			return fmt.Errorf("unknown meal slot %q (want one of %s)", args[0], strings.Join(categoryNames(), ", "))
		}

		s, err := newSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.load()
		if err != nil {
			return err
		}

		out := s.engine.Draw(res.Catalog, c, s.today)
		fmt.Println(formatOutcome(out, s.today))
		return nil
	},
}

func categoryNames() []string {
	var names []string
	for _, c := range catalog.Categories() {
		names = append(names, string(c))
	}
	return names
}

func formatOutcome(o draw.Outcome, today time.Time) string {
	header := fmt.Sprintf("%s · %s", o.Category.Title(), today.Format("2006/01/02 (Mon)"))
	switch o.Kind {
	case draw.Empty:
		return header + "\n  Nothing is listed for this slot, so there is nothing to draw."
	case draw.ClosedToday:
		return header + "\n  Every store is closed today."
	}
	r := o.Record
	price := r.Price
	if price != "" {
		price += " NT$"
	}
	return fmt.Sprintf("%s\n  Store: %s\n  Item:  %s\n  Price: %s", header, r.Store, r.Name, price)
}
