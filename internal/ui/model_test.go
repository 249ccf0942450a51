package ui

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folioadmin/internal/client"
	"folioadmin/internal/config"
	"folioadmin/internal/domain"
	"folioadmin/internal/eventbus"
	"folioadmin/internal/logging"
	"folioadmin/internal/ui/coordinator"
	inputtypes "folioadmin/internal/ui/input/types"
)

type fakePhotos struct {
	pages     []*domain.Page // served in order, last one repeats
	listErrs  map[int]error  // by call index
	listCalls int
	deletes   [][]int
	deleteErr error
}

func (f *fakePhotos) ListPhotos(context.Context) (*domain.Page, error) {
	i := f.listCalls
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	call := f.listCalls
	f.listCalls++
	if err := f.listErrs[call]; err != nil {
		return nil, err
	}
	return f.pages[i], nil
}

func (f *fakePhotos) DeletePhotos(_ context.Context, ids []int) error {
	f.deletes = append(f.deletes, ids)
	return f.deleteErr
}

func pageOf(ids ...int) *domain.Page {
	p := &domain.Page{}
	for _, id := range ids {
		p.Photos = append(p.Photos, domain.Photo{ID: id, Path: "https://cdn.example.com/t.webp"})
	}
	return p
}

func newLoadedModel(t *testing.T, photos *fakePhotos) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.UISettings.Columns = 2
	m := NewModel(context.Background(), cfg, photos, nil, logging.Nop())

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	msg := m.Init()()
	m.Update(msg)
	require.False(t, m.loading)
	return m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickTogglesTile(t *testing.T) {
	m := newLoadedModel(t, &fakePhotos{pages: []*domain.Page{pageOf(3, 7)}})

	// two columns of 20 cells; the second tile's label line
	m.Update(click(25, headerLines+1))
	assert.Equal(t, []int{7}, m.Selected())
	assert.True(t, m.tiles[1].HasClass(coordinator.SelectedClass))
	assert.Equal(t, 1, m.cursor)

	// clicking the title bar hits no tile
	m.Update(click(2, 0))
	assert.Equal(t, []int{7}, m.Selected())

	m.Update(click(25, headerLines+2))
	assert.Empty(t, m.Selected())
}

func TestKeyboardToggleUsesCursor(t *testing.T) {
	m := newLoadedModel(t, &fakePhotos{pages: []*domain.Page{pageOf(1, 2, 3)}})

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(key('l'))
	m.Update(key('l')) // wraps into the second row
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, []int{1, 3}, m.Selected())
	s := m.Summary()
	assert.Equal(t, 2, s.Count)
	assert.True(t, s.DeleteEnabled)
}

func TestDeleteFlowReloadsPage(t *testing.T) {
	photos := &fakePhotos{pages: []*domain.Page{pageOf(3, 7, 9), pageOf(9)}}
	m := newLoadedModel(t, photos)

	m.Update(click(5, headerLines+1))
	m.Update(click(25, headerLines+1))
	require.Equal(t, []int{3, 7}, m.Selected())

	m.Update(key('d'))
	require.Equal(t, inputtypes.ModeConfirm, m.input.CurrentMode())
	assert.Contains(t, ansi.Strip(m.View()), "delete 2 photos")

	_, cmd := m.Update(key('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, inputtypes.ModeNormal, m.input.CurrentMode())
	assert.False(t, m.Summary().DeleteEnabled)

	// a second delete cannot start while the first is in flight
	m.Update(key('d'))
	assert.Equal(t, inputtypes.ModeNormal, m.input.CurrentMode())

	_, reload := m.Update(cmd())
	require.Len(t, photos.deletes, 1)
	assert.Equal(t, []int{3, 7}, photos.deletes[0])
	require.NotNil(t, reload)

	m.Update(reload())
	assert.Equal(t, 2, photos.listCalls)
	assert.Empty(t, m.Selected(), "fresh page, fresh selection")
	assert.Len(t, m.tiles, 1)
	assert.False(t, m.Summary().CountVisible)
}

func TestDeleteDeclined(t *testing.T) {
	photos := &fakePhotos{pages: []*domain.Page{pageOf(1, 2)}}
	m := newLoadedModel(t, photos)

	m.Update(click(5, headerLines+1))
	m.Update(click(25, headerLines+1))
	m.Update(key('d'))
	_, cmd := m.Update(key('n'))

	assert.Nil(t, cmd)
	assert.Empty(t, photos.deletes)
	assert.Equal(t, []int{1, 2}, m.Selected())
}

func TestDeleteRejectedShowsAlert(t *testing.T) {
	photos := &fakePhotos{
		pages:     []*domain.Page{pageOf(5)},
		deleteErr: &client.StatusError{Op: "delete photos", Code: http.StatusForbidden, Status: "403 Forbidden"},
	}
	m := newLoadedModel(t, photos)

	m.Update(click(5, headerLines+1))
	m.Update(key('d'))
	_, cmd := m.Update(key('y'))
	require.NotNil(t, cmd)

	_, next := m.Update(cmd())
	assert.Nil(t, next, "no reload")
	assert.Equal(t, inputtypes.ModeAlert, m.input.CurrentMode())
	assert.Contains(t, ansi.Strip(m.View()), coordinator.AlertServerRejected)

	m.Update(key('x'))
	assert.Equal(t, inputtypes.ModeNormal, m.input.CurrentMode())
	assert.Empty(t, m.alert)
	assert.True(t, m.Summary().DeleteEnabled)
	assert.Equal(t, 1, photos.listCalls)
}

func TestDeleteTransportErrorShowsDescription(t *testing.T) {
	photos := &fakePhotos{
		pages:     []*domain.Page{pageOf(5)},
		deleteErr: errors.New("dial tcp: connection refused"),
	}
	m := newLoadedModel(t, photos)

	m.Update(click(5, headerLines+1))
	m.Update(key('d'))
	_, cmd := m.Update(key('y'))
	m.Update(cmd())

	assert.Contains(t, m.alert, "connection refused")
	assert.True(t, m.Summary().DeleteEnabled)
}

func TestDeleteKeyWithEmptySelectionDoesNothing(t *testing.T) {
	photos := &fakePhotos{pages: []*domain.Page{pageOf(1)}}
	m := newLoadedModel(t, photos)

	_, cmd := m.Update(key('d'))
	assert.Nil(t, cmd)
	assert.Equal(t, inputtypes.ModeNormal, m.input.CurrentMode())
	assert.Empty(t, photos.deletes)
}

func TestViewShowsCountOnlyWithSelection(t *testing.T) {
	m := newLoadedModel(t, &fakePhotos{pages: []*domain.Page{pageOf(1, 2)}})
	assert.NotContains(t, ansi.Strip(m.View()), "selected")

	m.Update(click(5, headerLines+1))
	assert.Contains(t, ansi.Strip(m.View()), "1 selected")
}

func TestReloadFailureAfterDeleteStaysRetryable(t *testing.T) {
	photos := &fakePhotos{
		pages:    []*domain.Page{pageOf(3, 7), pageOf(7)},
		listErrs: map[int]error{1: errors.New("connection refused")},
	}
	m := newLoadedModel(t, photos)

	m.Update(click(5, headerLines+1))
	m.Update(key('d'))
	_, cmd := m.Update(key('y'))
	require.NotNil(t, cmd)

	_, reload := m.Update(cmd())
	require.NotNil(t, reload)
	m.Update(reload())

	require.Equal(t, inputtypes.ModeAlert, m.input.CurrentMode())
	assert.Contains(t, m.alert, "connection refused")
	assert.Equal(t, domain.DeleteIdle, m.coord.State())
	assert.NotEqual(t, coordinator.InProgressLabel, m.Summary().DeleteLabel)

	m.Update(key('x'))
	require.Equal(t, inputtypes.ModeNormal, m.input.CurrentMode())

	_, retry := m.Update(key('r'))
	require.NotNil(t, retry, "reload must be possible again")
	m.Update(retry())
	assert.Equal(t, 3, photos.listCalls)
	assert.Len(t, m.tiles, 1)
	assert.Empty(t, m.Selected())
}

func TestPageLoadFailurePublishesError(t *testing.T) {
	photos := &fakePhotos{
		pages:    []*domain.Page{pageOf(1)},
		listErrs: map[int]error{0: client.ErrNotAuthenticated},
	}
	bus := eventbus.New(logging.Nop())
	defer bus.Close()

	var errorsSeen atomic.Int32
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if errors.Is(e.(eventbus.ErrorEvent).Err, client.ErrNotAuthenticated) {
			errorsSeen.Add(1)
		}
	})

	m := NewModel(context.Background(), config.DefaultConfig(), photos, bus, logging.Nop())
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m.Update(m.Init()())

	assert.False(t, m.loading)
	assert.Equal(t, inputtypes.ModeAlert, m.input.CurrentMode())
	assert.Empty(t, m.tiles)
	require.Eventually(t, func() bool { return errorsSeen.Load() == 1 }, time.Second, 5*time.Millisecond)
}
