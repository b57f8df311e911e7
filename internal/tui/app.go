package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/browser"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/loader"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// dotInterval is the pace of the "drawing..." animation.
const dotInterval = 300 * time.Millisecond

type mode int

const (
	modeBoard mode = iota
	modeSearch
	modeHelp
)

type App struct {
	loader    *loader.Loader
	sourceURL string
	viewURL   string
	timeout   time.Duration

	holder *catalog.Holder
	index  *index.Index
	engine *draw.Engine
	guard  *draw.Guard
	log    zerolog.Logger

	slots  []*slot
	cursor int
	mode   mode
	menu   []index.Meal

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model

	// State
	today     time.Time
	dateLabel string
	drawDelay time.Duration
	loading   bool
	loaded    bool
	status    string
	statusErr bool
	err       error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Loader    *loader.Loader
	SourceURL string
	ViewURL   string
	Timeout   time.Duration
	Holder    *catalog.Holder
	Index     *index.Index
	Engine    *draw.Engine
	Today     time.Time
	DrawDelay time.Duration
	Log       zerolog.Logger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search stores and items..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 60

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	holder := opts.Holder
	if holder == nil {
		holder = catalog.NewHolder()
	}

	a := &App{
		loader:      opts.Loader,
		sourceURL:   opts.SourceURL,
		viewURL:     opts.ViewURL,
		timeout:     opts.Timeout,
		holder:      holder,
		index:       opts.Index,
		engine:      opts.Engine,
		guard:       draw.NewGuard(),
		log:         opts.Log,
		slots:       newSlots(),
		searchInput: ti,
		spinner:     sp,
		today:       opts.Today,
		dateLabel:   opts.Today.Format("2006/01/02 (Mon)"),
		drawDelay:   opts.DrawDelay,
		loading:     true,
		status:      "Loading meal data...",
	}
	a.cursor = a.slotIndex(catalog.ForHour(opts.Today.Hour()))
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalogCmd(), a.spinner.Tick)
}

// loadCatalogCmd captures the source settings into the closure to avoid races.
func (a *App) loadCatalogCmd() tea.Cmd {
	l := a.loader
	uri := a.sourceURL
	timeout := a.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := l.Load(ctx, uri)
		if err != nil {
			return catalogErrMsg{err: err}
		}
		return catalogLoadedMsg{result: res}
	}
}

func (a *App) loadMenuCmd() tea.Cmd {
	if a.index == nil {
		return nil
	}
	opts := index.QueryOpts{
		Category: a.current().category,
		Days:     catalog.Bit(a.today.Weekday()),
		Search:   a.searchInput.Value(),
	}
	idx := a.index
	return func() tea.Msg {
		meals, err := idx.Query(opts)
		if err != nil {
			return menuErrMsg{err: err}
		}
		return menuLoadedMsg{category: opts.Category, meals: meals}
	}
}

func drawTickCmd(tok draw.Token) tea.Cmd {
	return tea.Tick(dotInterval, func(time.Time) tea.Msg {
		return drawTickMsg{token: tok}
	})
}

func drawRevealCmd(tok draw.Token, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return drawRevealMsg{token: tok}
	})
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) current() *slot {
	return a.slots[a.cursor]
}

func (a *App) slotIndex(c catalog.Category) int {
	for i, s := range a.slots {
		if s.category == c {
			return i
		}
	}
	return 0
}

// triggerDraw runs the engine against the current snapshot. Empty and
// ClosedToday show at once; a selection is held behind the animation and
// the control stays claimed until the reveal.
func (a *App) triggerDraw(c catalog.Category) tea.Cmd {
	s := a.slots[a.slotIndex(c)]
	if a.guard.Busy(c) {
		return nil
	}

	out := a.engine.Draw(a.holder.Load(), c, a.today)
	if out.Kind != draw.Selected {
		s.state = slotShown
		s.result = out
		a.log.Debug().Str("category", string(c)).Stringer("outcome", out.Kind).Msg("draw")
		return nil
	}

	tok, ok := a.guard.Begin(c)
	if !ok {
		return nil
	}
	s.state = slotDrawing
	s.token = tok
	s.pending = out
	s.dots = 0
	return tea.Batch(drawTickCmd(tok), drawRevealCmd(tok, a.drawDelay))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case catalogLoadedMsg:
		a.loading = false
		a.loaded = true
		a.holder.Swap(msg.result.Catalog)
		if a.index != nil {
			if err := a.index.Replace(msg.result.Catalog); err != nil {
				a.log.Warn().Err(err).Msg("indexing catalog")
				a.err = err
			}
		}
		a.status = loadStatus(msg.result.Total, nil)
		a.statusErr = false
		a.log.Info().Int("total", msg.result.Total).Int("skipped", msg.result.Skipped).Msg("catalog ready")
		return a, a.loadMenuCmd()

	case catalogErrMsg:
		a.loading = false
		a.loaded = true
		a.status = loadStatus(0, msg.err)
		a.statusErr = true
		a.err = msg.err
		a.log.Error().Err(msg.err).Msg("loading catalog")
		return a, nil

	case menuLoadedMsg:
		if msg.category == a.current().category {
			a.menu = msg.meals
		}
		return a, nil

	case menuErrMsg:
		a.err = msg.err
		return a, nil

	case drawTickMsg:
		if !a.guard.Current(msg.token) {
			return a, nil
		}
		s := a.slots[a.slotIndex(msg.token.Category)]
		s.dots = (s.dots + 1) % 4
		return a, drawTickCmd(msg.token)

	case drawRevealMsg:
		if !a.guard.End(msg.token) {
			return a, nil
		}
		s := a.slots[a.slotIndex(msg.token.Category)]
		s.state = slotShown
		s.result = s.pending
		a.log.Debug().
			Str("category", string(s.category)).
			Str("store", s.result.Record.Store).
			Str("item", s.result.Record.Name).
			Msg("draw")
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if !a.loaded {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Mode-specific handling
	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeBoard
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.cursor = (a.cursor + len(a.slots) - 1) % len(a.slots)
		return a, a.loadMenuCmd()
	case "right", "tab":
		a.cursor = (a.cursor + 1) % len(a.slots)
		return a, a.loadMenuCmd()
	case "enter", " ", "space":
		return a, a.triggerDraw(a.current().category)
	case "b", "l", "d", "s", "1", "2", "3", "4":
		c := a.categoryForKey(msg.String())
		prev := a.cursor
		a.cursor = a.slotIndex(c)
		cmds := []tea.Cmd{a.triggerDraw(c)}
		if a.cursor != prev {
			cmds = append(cmds, a.loadMenuCmd())
		}
		return a, tea.Batch(cmds...)
	case "r":
		if !a.loading {
			a.loading = true
			return a, tea.Batch(a.loadCatalogCmd(), a.spinner.Tick)
		}
		return a, nil
	case "o":
		return a, openBrowserCmd(a.viewURL)
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) categoryForKey(key string) catalog.Category {
	for i, s := range a.slots {
		if s.key == key || fmt.Sprint(i+1) == key {
			return s.category
		}
	}
	return a.current().category
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBoard
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		return a, a.loadMenuCmd()
	case "enter":
		a.mode = modeBoard
		a.searchInput.Blur()
		return a, a.loadMenuCmd()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  meallottery")
	}

	if !a.loaded {
		return renderSplash(a.width, a.height, a.spinner.View(), a.status)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Header
	headerLeft := headerStyle.Render("meallottery")
	headerRight := headerDateStyle.Render(a.dateLabel)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Board
	slotWidth := a.width / len(a.slots)
	slotHeight := 9
	cards := make([]string, len(a.slots))
	for i, s := range a.slots {
		cards[i] = renderSlot(s, i == a.cursor, slotWidth, slotHeight)
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	// Menu pane
	search := ""
	if a.mode == modeSearch || a.searchInput.Value() != "" {
		search = a.searchInput.View()
	}
	menuHeight := a.height - 1 - (slotHeight + 2) - 1 - 2
	if search != "" {
		menuHeight--
	}
	if menuHeight < 2 {
		menuHeight = 2
	}
	title := fmt.Sprintf("Open today · %s", a.current().category.Title())
	menu := menuPaneStyle.Width(a.width - 2).Height(menuHeight).
		Render(renderMenu(title, a.menu, menuHeight, a.width-4))

	// Status bar
	status := renderStatusBar(a.status, a.width, a.mode == modeSearch, a.loading)
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = slotErrorStyle.Render(truncateStr(a.err.Error(), a.width))
	} else if a.statusErr {
		status = slotErrorStyle.Render(status)
	}

	parts := []string{header, board}
	if search != "" {
		parts = append(parts, search)
	}
	parts = append(parts, menu, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("meallottery")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Draw") + "\n" +
		"  b l d s, 1-4   Draw breakfast / lunch / dinner / snack\n" +
		"  enter, space   Draw the focused slot\n" +
		"  ←/→, tab       Move between slots\n\n" +
		dim.Render("Data") + "\n" +
		"  r              Reload the meal sheet\n" +
		"  o              Open the meal sheet in the browser\n" +
		"  /              Search today's menu\n\n" +
		dim.Render("General") + "\n" +
		"  ?              Toggle this help\n" +
		"  q, ctrl+c      Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
