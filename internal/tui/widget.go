// Package tui renders the label multi-select and turns key presses into
// selection changes.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/labelpick/internal/config"
	"github.com/thenoetrevino/labelpick/internal/config/colors"
	"github.com/thenoetrevino/labelpick/internal/models"
	"github.com/thenoetrevino/labelpick/internal/selection"
)

// Fetcher reads the label catalog
type Fetcher interface {
	FetchLabels(ctx context.Context) ([]models.Label, error)
}

// Options configures a Widget
type Options struct {
	// Context bounds the catalog read; defaults to context.Background
	Context  context.Context
	Fetcher  Fetcher
	Saver    selection.Saver
	Ticket   int
	Initial  []int
	Policy   selection.Policy
	Debounce time.Duration
	Keys     config.KeyMappings
	Theme    colors.ColorScheme
}

// catalogLoadedMsg carries the fetched catalog into Update
type catalogLoadedMsg struct {
	labels []models.Label
}

// catalogFailedMsg reports a failed catalog read
type catalogFailedMsg struct {
	err error
}

// Widget is the label multi-select for one ticket.
// It implements tea.Model.
type Widget struct {
	ctx     context.Context
	fetcher Fetcher
	ticket  int
	initial []int
	policy  selection.Policy

	store     *selection.Store
	persister *selection.Persister

	keys   keyMap
	styles styles
	help   help.Model
	filter textinput.Model

	cursor int
	err    error
	closed bool

	// rendered regions, refreshed only when their inputs change
	chips string
	rows  map[int]string
}

// New creates a widget. Nothing is fetched until Init runs.
func New(opts Options) *Widget {
	keys := opts.Keys
	keys.Up = orDefault(keys.Up, config.DefaultKeyMappings().Up)
	keys.Down = orDefault(keys.Down, config.DefaultKeyMappings().Down)
	keys.Toggle = orDefault(keys.Toggle, config.DefaultKeyMappings().Toggle)
	keys.RemoveLast = orDefault(keys.RemoveLast, config.DefaultKeyMappings().RemoveLast)
	keys.Clear = orDefault(keys.Clear, config.DefaultKeyMappings().Clear)
	keys.Quit = orDefault(keys.Quit, config.DefaultKeyMappings().Quit)

	theme := opts.Theme
	theme.ApplyDefaults()

	ti := textinput.New()
	ti.Placeholder = "Filter labels..."
	ti.Prompt = "› "
	ti.Focus()

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := selection.NewStore()
	w := &Widget{
		ctx:     ctx,
		fetcher: opts.Fetcher,
		ticket:  opts.Ticket,
		initial: opts.Initial,
		policy:  opts.Policy,
		store:   store,
		keys:    newKeyMap(keys),
		styles:  newStyles(theme),
		help:    help.New(),
		filter:  ti,
		rows:    make(map[int]string),
	}
	if opts.Saver != nil {
		w.persister = selection.NewPersister(store, opts.Saver, opts.Ticket, opts.Debounce)
	}
	store.Subscribe(w.onSelectionChange)
	return w
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Ticket returns the ticket this widget edits
func (w *Widget) Ticket() int {
	return w.ticket
}

// Store exposes the selection store
func (w *Widget) Store() *selection.Store {
	return w.store
}

// Ready reports whether the catalog has loaded
func (w *Widget) Ready() bool {
	return w.store.Ready()
}

// Err returns the catalog error, if the read failed
func (w *Widget) Err() error {
	return w.err
}

// Close cancels any pending write. Safe to call more than once.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.persister != nil {
		w.persister.Close()
	}
}

// Init issues the catalog read
func (w *Widget) Init() tea.Cmd {
	ctx, fetcher := w.ctx, w.fetcher
	return func() tea.Msg {
		labels, err := fetcher.FetchLabels(ctx)
		if err != nil {
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{labels: labels}
	}
}

// Update handles all messages and updates the widget accordingly
func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		w.load(msg.labels)
		return w, nil

	case catalogFailedMsg:
		w.err = msg.err
		slog.Error("failed to load label catalog", "ticket", w.ticket, "error", msg.err)
		return w, nil

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	var cmd tea.Cmd
	w.filter, cmd = w.filter.Update(msg)
	return w, cmd
}

func (w *Widget) load(labels []models.Label) {
	options := selection.BuildOptions(labels)
	initial := selection.Resolve(options, w.initial, w.policy)

	for _, opt := range options {
		w.rows[opt.Value] = renderSwatch(opt) + " " + w.styles.normal.Render(opt.Label)
	}
	w.store.Load(options, initial)
	w.chips = w.renderChips(initial)

	slog.Info("label catalog loaded", "ticket", w.ticket, "labels", len(options), "selected", len(initial))
}

// onSelectionChange refreshes the chip row. Option rows do not depend on the
// selection, only their checkbox does, so they are left untouched.
func (w *Widget) onSelectionChange(c selection.Change) {
	w.chips = w.renderChips(c.Selection)
}

func (w *Widget) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Quit):
		w.Close()
		return w, tea.Quit

	case key.Matches(msg, w.keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
		return w, nil

	case key.Matches(msg, w.keys.Down):
		if w.cursor < len(w.filtered())-1 {
			w.cursor++
		}
		return w, nil

	case key.Matches(msg, w.keys.Toggle):
		w.toggleCursor()
		return w, nil

	case key.Matches(msg, w.keys.Clear):
		if w.store.Ready() {
			w.store.Clear()
		}
		return w, nil

	case key.Matches(msg, w.keys.RemoveLast) && w.filter.Value() == "":
		if w.store.Ready() {
			w.store.RemoveLast()
		}
		return w, nil
	}

	// Everything else edits the filter
	before := w.filter.Value()
	var cmd tea.Cmd
	w.filter, cmd = w.filter.Update(msg)
	if w.filter.Value() != before {
		w.cursor = 0
	}
	return w, cmd
}

func (w *Widget) toggleCursor() {
	if !w.store.Ready() {
		return
	}
	items := w.filtered()
	if w.cursor < 0 || w.cursor >= len(items) {
		return
	}
	w.store.Toggle(items[w.cursor])
}

// filtered returns the options whose name contains the filter text,
// case-insensitively. No filter returns all options.
func (w *Widget) filtered() []models.Option {
	options := w.store.Options()
	f := strings.ToLower(strings.TrimSpace(w.filter.Value()))
	if f == "" {
		return options
	}

	var out []models.Option
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Label), f) {
			out = append(out, o)
		}
	}
	return out
}
