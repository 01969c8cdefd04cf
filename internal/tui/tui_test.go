package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mansion/internal/engine"
	"github.com/tatianab/mansion/internal/models"
)

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestDigitKeysDispatchActions(t *testing.T) {
	m := NewModel(engine.New(), nil, t.TempDir())

	m, _ = press(t, m, "4")
	assert.Equal(t, []string{"Old Map"}, m.snap.Inventory)
	assert.Equal(t, 25, m.snap.Score)

	m, _ = press(t, m, "enter")
	assert.Equal(t, "library", m.snap.Room.ID)
}

func TestCursorNavigation(t *testing.T) {
	m := NewModel(engine.New(), nil, t.TempDir())

	m, _ = press(t, m, "down", "down", "enter")
	assert.Equal(t, "upstairs", m.snap.Room.ID)
	assert.Equal(t, 2, m.cursor)
}

func TestRiddleInput(t *testing.T) {
	m := NewModel(engine.New(), nil, t.TempDir())

	m, _ = press(t, m, "2", "2", "2")
	require.Equal(t, stateRiddle, m.state)
	require.NotNil(t, m.snap.Riddle)
	assert.Contains(t, m.View(), "Kitchen Sprite waits for your answer")

	m, _ = press(t, m, "a lamp", "enter")
	assert.Equal(t, statePlaying, m.state)
	require.Len(t, m.snap.Room.Objects, 1)
	assert.Equal(t, "lantern", m.snap.Room.Objects[0].ID)
}

func TestGameOverRecordsAndRestarts(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(engine.New(), nil, dir)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)

	m, _ = press(t, m, "1", "3", "3", "3")
	m, cmd := press(t, m, "3")
	require.Equal(t, stateGameOver, m.state)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Game Over")
	assert.Contains(t, m.View(), "Final Score: 0")

	saved, ok := cmd().(recordSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	records, err := models.ListRecords(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Won)
	assert.Equal(t, 5, records[0].Turns)

	m, _ = press(t, m, "r")
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, "entrance", m.snap.Room.ID)
	assert.Equal(t, 100, m.snap.Health)
}

type stubDescriber struct{ text string }

func (s stubDescriber) Describe(ctx context.Context, snap models.Snapshot) (string, error) {
	return s.text + " " + snap.Room.Name, nil
}

func TestNarration(t *testing.T) {
	m := NewModel(engine.New(), stubDescriber{text: "Shadows gather in the"}, t.TempDir())

	m, cmd := press(t, m, "n")
	require.NotNil(t, cmd)
	assert.True(t, m.narrating)

	next, _ := m.Update(cmd())
	m = next.(model)
	assert.False(t, m.narrating)
	assert.Equal(t, "Shadows gather in the Entrance Hall", m.narration)

	m, _ = press(t, m, "1")
	assert.Empty(t, m.narration)
}
