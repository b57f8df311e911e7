package catalog

import "sync/atomic"

// MealRecord is one purchasable item. Values are never modified after parsing.
type MealRecord struct {
	Store string
	Name  string
	Price string
	Days  DaySet
}

// OpenOn reports whether the store sells this item on the given day.
func (r MealRecord) OpenOn(d DaySet) bool {
	return r.Days&d != 0
}

// Catalog maps each category to its records in source row order.
// A Catalog is built once by a Builder and treated as read-only afterwards.
type Catalog struct {
	byCategory map[Category][]MealRecord
}

// Records returns the records configured for c. The slice must not be modified.
func (c *Catalog) Records(cat Category) []MealRecord {
	if c == nil {
		return nil
	}
	return c.byCategory[cat]
}

// Total returns the number of records across all categories.
func (c *Catalog) Total() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, recs := range c.byCategory {
		n += len(recs)
	}
	return n
}

// Counts returns the number of records per category.
func (c *Catalog) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories()))
	for _, cat := range Categories() {
		out[cat] = len(c.Records(cat))
	}
	return out
}

// Builder accumulates records for a new Catalog.
type Builder struct {
	byCategory map[Category][]MealRecord
}

func NewBuilder() *Builder {
	return &Builder{byCategory: make(map[Category][]MealRecord)}
}

func (b *Builder) Add(cat Category, r MealRecord) {
	b.byCategory[cat] = append(b.byCategory[cat], r)
}

// Build returns the finished catalog. The builder must not be used afterwards.
func (b *Builder) Build() *Catalog {
	c := &Catalog{byCategory: b.byCategory}
	b.byCategory = nil
	return c
}

// Holder owns the current catalog snapshot. Readers call Load and keep the
// returned pointer for the duration of one operation; reloads publish a whole
// new catalog through Swap.
type Holder struct {
	cur atomic.Pointer[Catalog]
}

// NewHolder returns a holder with an empty catalog.
func NewHolder() *Holder {
	h := &Holder{}
	h.cur.Store(NewBuilder().Build())
	return h
}

func (h *Holder) Load() *Catalog {
	return h.cur.Load()
}

// Swap publishes next and returns the previous catalog.
func (h *Holder) Swap(next *Catalog) *Catalog {
	if next == nil {
		next = NewBuilder().Build()
	}
	return h.cur.Swap(next)
}
