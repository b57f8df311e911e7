package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
)

// maxBody caps the size of a sheet export we are willing to read.
const maxBody = 8 << 20

// row mirrors one line of the sheet export. Columns are matched by header name.
type row struct {
	Category string `csv:"category"`
	Store    string `csv:"store"`
	Name     string `csv:"name"`
	Price    string `csv:"price"`
	DaysOpen string `csv:"daysOpen"`
}

// Result is a successfully loaded catalog.
type Result struct {
	Catalog *catalog.Catalog
	Total   int
	Skipped int
}

// LoadError reports a failed fetch or an unreadable export.
type LoadError struct {
	URI string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.URI, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Loader struct {
	client *http.Client
	log    zerolog.Logger
}

// New returns a Loader. A nil client means http.DefaultClient.
func New(client *http.Client, log zerolog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, log: log}
}

// Load fetches the CSV at uri and builds a catalog from it. It makes a single
// attempt; any failure is returned as a *LoadError.
func (l *Loader) Load(ctx context.Context, uri string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return Result{}, &LoadError{URI: uri, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := l.client.Do(req)
	if err != nil {
		return Result{}, &LoadError{URI: uri, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &LoadError{URI: uri, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	res, err := Parse(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{}, &LoadError{URI: uri, Err: err}
	}

	l.log.Debug().
		Str("uri", uri).
		Int("total", res.Total).
		Int("skipped", res.Skipped).
		Msg("catalog loaded")
	return res, nil
}

// Parse reads a header-driven CSV export. Rows whose category is blank or not
// one of the known meal slots are skipped; they are counted but not an error.
func Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows []row
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return Result{Catalog: catalog.NewBuilder().Build()}, nil
		}
		return Result{}, fmt.Errorf("parsing csv: %w", err)
	}

	b := catalog.NewBuilder()
	var res Result
	for _, rw := range rows {
		cat, ok := catalog.ParseCategory(rw.Category)
		if !ok {
			res.Skipped++
			continue
		}
		b.Add(cat, catalog.MealRecord{
			Store: strings.TrimSpace(rw.Store),
			Name:  strings.TrimSpace(rw.Name),
			Price: strings.TrimSpace(rw.Price),
			Days:  catalog.ParseDays(rw.DaysOpen),
		})
		res.Total++
	}
	res.Catalog = b.Build()
	return res, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}
