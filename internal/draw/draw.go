// Package draw picks a meal from a catalog snapshot.
//
// A draw is a three-way outcome rather than an error: a slot may have no
// records at all (Empty), may have records none of which are open today
// (ClosedToday), or yields a record (Selected).
//
// # Fairness
//
// Selection is two-stage. A store is chosen uniformly among the distinct
// stores that have at least one eligible item, then an item is chosen
// uniformly among that store's eligible items. A store listing ten items has
// the same chance as a store listing one.
//
// # Determinism
//
// Given the same Source state, catalog and day, Draw returns the same record.
// Stores are grouped in first-seen row order so a seeded Source reproduces.
package draw

import (
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
)

// Kind classifies a draw outcome.
type Kind int

const (
	Empty Kind = iota
	ClosedToday
	Selected
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case ClosedToday:
		return "closed_today"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// Outcome is the result of one draw. Record is only meaningful when Kind is Selected.
type Outcome struct {
	Kind     Kind
	Category catalog.Category
	Record   catalog.MealRecord
}

type Engine struct {
	src Source
}

// NewEngine returns an engine drawing from src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Draw selects one record for c that is open on today's weekday.
func (e *Engine) Draw(cat *catalog.Catalog, c catalog.Category, today time.Time) Outcome {
	out := Outcome{Kind: Empty, Category: c}

	records := cat.Records(c)
	if len(records) == 0 {
		return out
	}

	eligible := Eligible(records, today.Weekday())
	if len(eligible) == 0 {
		out.Kind = ClosedToday
		return out
	}

	stores := groupByStore(eligible)
	items := stores[e.src.IntN(len(stores))].items
	out.Kind = Selected
	out.Record = items[e.src.IntN(len(items))]
	return out
}

// Eligible returns the records open on day, in their original order.
func Eligible(records []catalog.MealRecord, day time.Weekday) []catalog.MealRecord {
	bit := catalog.Bit(day)
	var out []catalog.MealRecord
	for _, r := range records {
		if r.OpenOn(bit) {
			out = append(out, r)
		}
	}
	return out
}

type storeGroup struct {
	items []catalog.MealRecord
}

func groupByStore(records []catalog.MealRecord) []storeGroup {
	idx := make(map[string]int)
	var groups []storeGroup
	for _, r := range records {
		i, ok := idx[r.Store]
		if !ok {
			i = len(groups)
			idx[r.Store] = i
			groups = append(groups, storeGroup{})
		}
		groups[i].items = append(groups[i].items, r)
	}
	return groups
}
