package index

import (
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
)

type Meal struct {
	Category catalog.Category
	Store    string
	Name     string
	Price    string
	Days     catalog.DaySet
}

type QueryOpts struct {
	Category catalog.Category
	Days     catalog.DaySet // zero = any day
	Stores   []string
	Search   string
	Limit    int // zero = no limit
}

type CategoryStats struct {
	Category  catalog.Category
	Total     int
	OpenToday int
	Stores    int
}

type Stats struct {
	Categories []CategoryStats
	LoadedAt   time.Time
}
