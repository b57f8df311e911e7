package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/config"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/loader"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session is what every command needs after flags and config are resolved.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	logOut io.Closer
	loader *loader.Loader
	engine *draw.Engine
	today  time.Time
}

func newSession(interactive bool) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagSource != "" {
		if err := cfg.SetSourceURL(flagSource); err != nil {
			return nil, fmt.Errorf("invalid --source value: %w", err)
		}
	}

	log, logOut, err := newLogger(cfg, interactive)
	if err != nil {
		return nil, err
	}

	today, err := parseDate(flagDate, cfg.Location(), time.Now())
	if err != nil {
		logOut.Close()
		return nil, fmt.Errorf("invalid --date value: %w", err)
	}

	src, err := draw.NewSource(flagSeed)
	if err != nil {
		logOut.Close()
		return nil, fmt.Errorf("seeding draws: %w", err)
	}

	client := &http.Client{Timeout: cfg.SourceTimeout()}
	return &session{
		cfg:    cfg,
		log:    log,
		logOut: logOut,
		loader: loader.New(client, log.With().Str("component", "loader").Logger()),
		engine: draw.NewEngine(src),
		today:  today,
	}, nil
}

func (s *session) Close() error {
	return s.logOut.Close()
}

// load fetches the catalog once for a one-shot command.
func (s *session) load() (loader.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SourceTimeout())
	defer cancel()

	res, err := s.loader.Load(ctx, s.cfg.Source.URL)
	if err != nil {
		return loader.Result{}, fmt.Errorf("failed to load meal data: %w", err)
	}
	if res.Skipped > 0 {
		s.log.Warn().Int("skipped", res.Skipped).Msg("rows with an unknown category were skipped")
	}
	return res, nil
}

// loadIndex loads the catalog and indexes it in memory.
func (s *session) loadIndex() (*index.Index, error) {
	res, err := s.load()
	if err != nil {
		return nil, err
	}
	idx, err := index.Open()
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if err := idx.Replace(res.Catalog); err != nil {
		idx.Close()
		return nil, fmt.Errorf("indexing catalog: %w", err)
	}
	return idx, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := index.Open()
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer idx.Close()

	s.log.Info().
		Str("source", s.cfg.Source.URL).
		Time("today", s.today).
		Msg("starting")

	return tui.Run(tui.RunOpts{
		Loader:    s.loader,
		SourceURL: s.cfg.Source.URL,
		ViewURL:   s.cfg.ViewURL(),
		Timeout:   s.cfg.SourceTimeout(),
		Holder:    catalog.NewHolder(),
		Index:     idx,
		Engine:    s.engine,
		Today:     s.today,
		DrawDelay: s.cfg.DrawDelayDuration(),
		Log:       s.log.With().Str("component", "tui").Logger(),
	})
}

// parseDate resolves --date in loc. The wall clock of now is kept so the
// time-of-day focus still applies; an empty value means now.
func parseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	now = now.In(loc)
	if s == "" {
		return now, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, loc), nil
}
