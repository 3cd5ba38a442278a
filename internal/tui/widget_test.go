package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/labelpick/internal/models"
	"github.com/thenoetrevino/labelpick/internal/selection"
)

const quiet = 30 * time.Millisecond

type fakeFetcher struct {
	labels []models.Label
	err    error
}

func (f *fakeFetcher) FetchLabels(context.Context) ([]models.Label, error) {
	return f.labels, f.err
}

type write struct {
	ticket int
	labels []int
}

type fakeSaver struct {
	mu     sync.Mutex
	writes []write
}

func (f *fakeSaver) SaveTicketLabels(_ context.Context, ticket int, labels []int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, write{ticket: ticket, labels: labels})
	return 204, nil
}

func (f *fakeSaver) Writes() []write {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]write(nil), f.writes...)
}

func testLabels() []models.Label {
	return []models.Label{
		{ID: 1, Name: "bug", Color: "#EF4444"},
		{ID: 2, Name: "docs", Color: "#EAB308"},
		{ID: 4, Name: "ui", Color: "#3B82F6"},
	}
}

func setupWidget(t *testing.T, initial []int) (*Widget, *fakeSaver) {
	t.Helper()
	saver := &fakeSaver{}
	w := New(Options{
		Fetcher:  &fakeFetcher{labels: testLabels()},
		Saver:    saver,
		Ticket:   7,
		Initial:  initial,
		Debounce: quiet,
	})
	t.Cleanup(w.Close)
	return w, saver
}

// runInit executes the Init command and feeds its message back into Update
func runInit(t *testing.T, w *Widget) {
	t.Helper()
	cmd := w.Init()
	require.NotNil(t, cmd)
	w.Update(cmd())
}

func press(w *Widget, k tea.Key) {
	w.Update(tea.KeyPressMsg(k))
}

func typeText(w *Widget, s string) {
	for _, r := range s {
		press(w, tea.Key{Text: string(r), Code: r})
	}
}

// TestInit_LoadsCatalogAndInitialSelection ensures the initial ids resolve to options.
func TestInit_LoadsCatalogAndInitialSelection(t *testing.T) {
	w, _ := setupWidget(t, []int{2, 4})
	assert.False(t, w.Ready())

	runInit(t, w)

	assert.True(t, w.Ready())
	assert.Len(t, w.Store().Options(), 3)
	assert.Equal(t, []int{2, 4}, w.Store().Selection().IDs())

	out := w.Render()
	assert.Contains(t, out, "docs")
	assert.Contains(t, out, "ui")
	assert.Contains(t, out, "[x]")
}

// TestInit_FetchFailure leaves the widget not-ready with no options.
func TestInit_FetchFailure(t *testing.T) {
	saver := &fakeSaver{}
	w := New(Options{
		Fetcher:  &fakeFetcher{err: errors.New("connection refused")},
		Saver:    saver,
		Ticket:   7,
		Debounce: quiet,
	})
	t.Cleanup(w.Close)

	runInit(t, w)

	assert.False(t, w.Ready())
	assert.Error(t, w.Err())
	assert.Contains(t, w.Render(), "connection refused")

	press(w, tea.Key{Code: tea.KeyEnter})
	time.Sleep(3 * quiet)
	assert.Empty(t, saver.Writes())
}

// TestKeys_BeforeReadyDoNotWrite ensures no write happens before the catalog resolves.
func TestKeys_BeforeReadyDoNotWrite(t *testing.T) {
	w, saver := setupWidget(t, []int{2})

	press(w, tea.Key{Code: tea.KeyEnter})
	press(w, tea.Key{Code: 'x', Mod: tea.ModCtrl})
	press(w, tea.Key{Code: tea.KeyBackspace})

	time.Sleep(3 * quiet)
	assert.Empty(t, saver.Writes())
	assert.Contains(t, w.Render(), "Loading labels")
}

// TestEndToEnd_RemoveLabelWritesOnce mounts with labels 2 and 4, removes 2,
// and expects exactly one write with the remaining label.
func TestEndToEnd_RemoveLabelWritesOnce(t *testing.T) {
	w, saver := setupWidget(t, []int{2, 4})
	runInit(t, w)

	press(w, tea.Key{Code: tea.KeyDown}) // cursor on "docs" (id 2)
	press(w, tea.Key{Code: tea.KeyEnter})
	assert.Equal(t, []int{4}, w.Store().Selection().IDs())

	require.Eventually(t, func() bool { return len(saver.Writes()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * quiet)
	writes := saver.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, write{ticket: 7, labels: []int{4}}, writes[0])
}

func TestToggle_RapidEditsCollapse(t *testing.T) {
	w, saver := setupWidget(t, nil)
	runInit(t, w)

	press(w, tea.Key{Code: tea.KeyEnter}) // + bug
	press(w, tea.Key{Code: tea.KeyDown})
	press(w, tea.Key{Code: tea.KeyEnter}) // + docs
	press(w, tea.Key{Code: tea.KeyEnter}) // - docs

	require.Eventually(t, func() bool { return len(saver.Writes()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * quiet)
	assert.Len(t, saver.Writes(), 1)
	assert.Equal(t, []int{1}, saver.Writes()[0].labels)
}

func TestFilter_NarrowsOptionsAndResetsCursor(t *testing.T) {
	w, _ := setupWidget(t, nil)
	runInit(t, w)

	press(w, tea.Key{Code: tea.KeyDown})
	typeText(w, "DO")

	items := w.filtered()
	require.Len(t, items, 1)
	assert.Equal(t, "docs", items[0].Label)
	assert.Equal(t, 0, w.cursor)

	press(w, tea.Key{Code: tea.KeyEnter})
	assert.Equal(t, []int{2}, w.Store().Selection().IDs())

	typeText(w, "zzz")
	assert.Empty(t, w.filtered())
	assert.Contains(t, w.Render(), "No labels match")
}

// TestBackspace_EditsFilterBeforeRemovingChips ensures backspace only removes
// a chip when the filter is empty.
func TestBackspace_EditsFilterBeforeRemovingChips(t *testing.T) {
	w, _ := setupWidget(t, []int{1, 4})
	runInit(t, w)

	typeText(w, "u")
	press(w, tea.Key{Code: tea.KeyBackspace})
	assert.Equal(t, "", w.filter.Value())
	assert.Equal(t, []int{1, 4}, w.Store().Selection().IDs())

	press(w, tea.Key{Code: tea.KeyBackspace})
	assert.Equal(t, []int{1}, w.Store().Selection().IDs())
}

func TestClear_EmptiesSelection(t *testing.T) {
	w, saver := setupWidget(t, []int{1, 4})
	runInit(t, w)

	press(w, tea.Key{Code: 'x', Mod: tea.ModCtrl})
	assert.Empty(t, w.Store().Selection())
	assert.Contains(t, w.Render(), "No labels selected")

	require.Eventually(t, func() bool { return len(saver.Writes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{}, saver.Writes()[0].labels)
}

// TestQuit_CancelsPendingWrite ensures closing the widget drops the pending write.
func TestQuit_CancelsPendingWrite(t *testing.T) {
	w, saver := setupWidget(t, []int{1})
	runInit(t, w)

	press(w, tea.Key{Code: tea.KeyEnter})
	_, cmd := w.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	require.NotNil(t, cmd)

	time.Sleep(3 * quiet)
	assert.Empty(t, saver.Writes())
}

func TestCursor_StaysInBounds(t *testing.T) {
	w, _ := setupWidget(t, nil)
	runInit(t, w)

	press(w, tea.Key{Code: tea.KeyUp})
	assert.Equal(t, 0, w.cursor)
	for range 10 {
		press(w, tea.Key{Code: tea.KeyDown})
	}
	assert.Equal(t, 2, w.cursor)
}

// TestKeepMissing_RendersOnlyKnownChips ensures unknown ids keep their slot
// without producing a chip or reaching the server.
func TestKeepMissing_RendersOnlyKnownChips(t *testing.T) {
	saver := &fakeSaver{}
	w := New(Options{
		Fetcher:  &fakeFetcher{labels: testLabels()},
		Saver:    saver,
		Ticket:   7,
		Initial:  []int{99, 4},
		Policy:   selection.KeepMissing,
		Debounce: quiet,
	})
	t.Cleanup(w.Close)
	runInit(t, w)

	sel := w.Store().Selection()
	require.Len(t, sel, 2)
	assert.Nil(t, sel[0])
	assert.Equal(t, 1, strings.Count(w.chips, "×"))
}

func TestView_WrapsRender(t *testing.T) {
	w, _ := setupWidget(t, nil)
	runInit(t, w)
	assert.Equal(t, w.Render(), w.View().Content)
}
