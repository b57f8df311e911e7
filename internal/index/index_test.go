package index

import (
	"fmt"
	"testing"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open()
	if err != nil {
		t.Fatalf("opening test index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleCatalog() *catalog.Catalog {
	b := catalog.NewBuilder()
	b.Add(catalog.Lunch, catalog.MealRecord{Store: "Curry House", Name: "Chicken curry", Price: "120", Days: catalog.ParseDays("Mon,Wed")})
	b.Add(catalog.Lunch, catalog.MealRecord{Store: "Curry House", Name: "Veg curry", Price: "100", Days: catalog.ParseDays("Wed")})
	b.Add(catalog.Lunch, catalog.MealRecord{Store: "Noodle Bar", Name: "Ramen", Price: "150", Days: catalog.ParseDays("Tue")})
	b.Add(catalog.Breakfast, catalog.MealRecord{Store: "Bakery", Name: "Toast", Price: "30", Days: catalog.ParseDays("Mon,Tue,Wed")})
	b.Add(catalog.Snack, catalog.MealRecord{Store: "Stand", Name: "Tea", Price: "25"})
	return b.Build()
}

func TestReplaceAndQueryAll(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 meals, got %d", len(got))
	}
	// Ordered by category display order, then row order
	if got[0].Category != catalog.Breakfast {
		t.Errorf("expected breakfast first, got %s", got[0].Category)
	}
	if got[1].Name != "Chicken curry" || got[2].Name != "Veg curry" {
		t.Errorf("expected lunch rows in source order, got %q, %q", got[1].Name, got[2].Name)
	}
	if got[1].Days.String() != "Mon,Wed" {
		t.Errorf("days not round-tripped: %s", got[1].Days)
	}
}

func TestReplaceDropsPreviousRows(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	b := catalog.NewBuilder()
	b.Add(catalog.Dinner, catalog.MealRecord{Store: "Grill", Name: "Steak"})
	if err := idx.Replace(b.Build()); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Steak" {
		t.Errorf("expected only the new row, got %+v", got)
	}
}

func TestQueryCategory(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{Category: catalog.Lunch})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 lunch meals, got %d", len(got))
	}
	for _, m := range got {
		if m.Category != catalog.Lunch {
			t.Errorf("expected lunch, got %s", m.Category)
		}
	}
}

func TestQueryDays(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{Category: catalog.Lunch, Days: catalog.Bit(time.Wednesday)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 lunch meals open Wednesday, got %d", len(got))
	}
}

func TestQuerySearchAndStores(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{Search: "ramen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Store != "Noodle Bar" {
		t.Errorf("expected Noodle Bar ramen, got %+v", got)
	}

	got, err = idx.Query(QueryOpts{Stores: []string{"Curry House", "Bakery"}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 5 meals, got %d", len(got))
	}
}

func TestQueryLimit(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := idx.Query(QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 meals with limit, got %d", len(got))
	}
}

func TestQueryWithoutLimitReturnsEveryRow(t *testing.T) {
	idx := testIndex(t)
	b := catalog.NewBuilder()
	for i := 0; i < 750; i++ {
		b.Add(catalog.Lunch, catalog.MealRecord{Store: fmt.Sprintf("Store %d", i%7), Name: fmt.Sprintf("Item %d", i), Days: catalog.ParseDays("Mon")})
	}
	if err := idx.Replace(b.Build()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := idx.Query(QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 750 {
		t.Errorf("expected all 750 meals, got %d", len(got))
	}
	if got[749].Name != "Item 749" {
		t.Errorf("last meal = %q, want row order kept", got[749].Name)
	}
}

func TestStats(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Replace(sampleCatalog()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	st, err := idx.Stats(time.Wednesday)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(st.Categories) != 4 {
		t.Fatalf("expected a row per category, got %d", len(st.Categories))
	}
	byCat := map[catalog.Category]CategoryStats{}
	for _, s := range st.Categories {
		byCat[s.Category] = s
	}
	lunch := byCat[catalog.Lunch]
	if lunch.Total != 3 || lunch.OpenToday != 2 || lunch.Stores != 2 {
		t.Errorf("unexpected lunch stats: %+v", lunch)
	}
	if d := byCat[catalog.Dinner]; d.Total != 0 {
		t.Errorf("expected empty dinner stats, got %+v", d)
	}
	if s := byCat[catalog.Snack]; s.Total != 1 || s.OpenToday != 0 {
		t.Errorf("unexpected snack stats: %+v", s)
	}
	if st.LoadedAt.IsZero() {
		t.Error("expected loaded_at to be recorded")
	}
}

func TestEmptyIndex(t *testing.T) {
	idx := testIndex(t)
	got, err := idx.Query(QueryOpts{})
	if err != nil {
		t.Fatalf("query on empty index: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no meals, got %d", len(got))
	}
	st, err := idx.Stats(time.Monday)
	if err != nil {
		t.Fatalf("stats on empty index: %v", err)
	}
	if !st.LoadedAt.IsZero() {
		t.Error("expected zero LoadedAt before any Replace")
	}
}
