package index

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	_ "modernc.org/sqlite"
)

// Index is an in-memory SQLite view of the current catalog used for listing
// and searching. Nothing is written to disk.
type Index struct {
	db *sql.DB
}

func Open() (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening index db: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func (i *Index) init() error {
	_, err := i.db.Exec(`
		CREATE TABLE IF NOT EXISTS meals (
			seq      INTEGER NOT NULL,
			category TEXT NOT NULL,
			store    TEXT NOT NULL,
			name     TEXT NOT NULL,
			price    TEXT NOT NULL DEFAULT '',
			days     INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_meals_category ON meals(category, seq);
		CREATE INDEX IF NOT EXISTS idx_meals_store ON meals(store);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (i *Index) Close() error {
	if i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Replace swaps the indexed rows for the contents of cat in one transaction.
func (i *Index) Replace(cat *catalog.Catalog) error {
	tx, err := i.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meals`); err != nil {
		return fmt.Errorf("clearing meals: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO meals (seq, category, store, name, price, days)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	seq := 0
	for _, c := range catalog.Categories() {
		for _, r := range cat.Records(c) {
			if _, err := stmt.Exec(seq, string(c), r.Store, r.Name, r.Price, int(r.Days)); err != nil {
				return fmt.Errorf("inserting %s/%s: %w", r.Store, r.Name, err)
			}
			seq++
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('loaded_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording load time: %w", err)
	}

	return tx.Commit()
}

func (i *Index) Query(opts QueryOpts) ([]Meal, error) {
	var (
		where []string
		args  []interface{}
	)

	if opts.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(opts.Category))
	}

	if opts.Days != 0 {
		where = append(where, "(days & ?) != 0")
		args = append(args, int(opts.Days))
	}

	if len(opts.Stores) > 0 {
		placeholders := make([]string, len(opts.Stores))
		for j, s := range opts.Stores {
			placeholders[j] = "?"
			args = append(args, s)
		}
		where = append(where, "store IN ("+strings.Join(placeholders, ",")+")") //nolint:gosec
	}

	if opts.Search != "" {
		where = append(where, "(store LIKE ? OR name LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term)
	}

	query := "SELECT category, store, name, price, days FROM meals"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := i.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying meals: %w", err)
	}
	defer rows.Close()

	var meals []Meal
	for rows.Next() {
		var (
			m    Meal
			cat  string
			days int
		)
		if err := rows.Scan(&cat, &m.Store, &m.Name, &m.Price, &days); err != nil {
			return nil, fmt.Errorf("scanning meal: %w", err)
		}
		m.Category = catalog.Category(cat)
		m.Days = catalog.DaySet(days)
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// Stats returns per-category counts, with OpenToday counted against day.
func (i *Index) Stats(day time.Weekday) (Stats, error) {
	bit := int(catalog.Bit(day))
	byCat := make(map[catalog.Category]CategoryStats)

	rows, err := i.db.Query(`
		SELECT category,
		       COUNT(*),
		       SUM(CASE WHEN (days & ?) != 0 THEN 1 ELSE 0 END),
		       COUNT(DISTINCT store)
		FROM meals
		GROUP BY category
	`, bit)
	if err != nil {
		return Stats{}, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cat string
			s   CategoryStats
		)
		if err := rows.Scan(&cat, &s.Total, &s.OpenToday, &s.Stores); err != nil {
			return Stats{}, fmt.Errorf("scanning stats: %w", err)
		}
		s.Category = catalog.Category(cat)
		byCat[s.Category] = s
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	var out Stats
	for _, c := range catalog.Categories() {
		s := byCat[c]
		s.Category = c
		out.Categories = append(out.Categories, s)
	}
	out.LoadedAt = i.loadedAt()
	return out, nil
}

func (i *Index) loadedAt() time.Time {
	var value string
	if err := i.db.QueryRow("SELECT value FROM meta WHERE key = 'loaded_at'").Scan(&value); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
