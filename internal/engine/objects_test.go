package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mansion/internal/models"
)

func TestTakeOnlyOnce(t *testing.T) {
	e := newTestEngine()

	res := e.Take("map")
	assert.Equal(t, []string{"You take the Old Map."}, res.Messages)
	assert.Nil(t, e.currentRoom().Object("map"))

	res = e.Take("map")
	assert.Empty(t, res.Messages)
	snap := e.Snapshot()
	assert.Equal(t, []string{"Old Map"}, snap.Inventory)
	assert.Equal(t, 25, snap.Score)
}

func TestTakeEffects(t *testing.T) {
	tests := []struct {
		room  string
		id    string
		flag  models.Flag
		score int
	}{
		{"entrance", "map", models.FlagHasMap, 25},
		{"dining", "key", models.FlagHasKey, 0},
		{"dining", "goblet", "", 50},
		{"kitchen", "lantern", models.FlagHasLantern, 0},
		{"library", "sword", models.FlagHasSword, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e := newTestEngine()
			placeAt(e, tt.room)
			e.currentRoom().Reveal(tt.id)

			res := e.Take(tt.id)
			assert.Equal(t, tt.score, res.ScoreDelta)
			if tt.flag != "" {
				assert.Equal(t, []models.Flag{tt.flag}, e.player.Flags.List())
			} else {
				assert.Zero(t, e.player.Flags.Len())
			}
			assert.True(t, e.player.HasItem(tt.id))
		})
	}
}

func TestLanternLightsTheAttic(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "kitchen")
	e.Talk("sprite")
	e.SubmitRiddleAnswer("a lamp")
	e.Take("lantern")
	require.True(t, e.player.Flags.Has(models.FlagHasLantern))

	placeAt(e, "upstairs")
	res := e.Move("south")
	assert.Equal(t, []string{"You go south to the Attic."}, res.Messages)
	assert.Equal(t, "attic", e.Snapshot().Room.ID)
}

func TestHiddenObjectsCannotBeTaken(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "library")

	assert.Empty(t, e.Take("sword").Messages)
	assert.False(t, e.player.Flags.Has(models.FlagHasSword))
	assert.NotNil(t, e.currentRoom().Object("sword"))
	assert.Empty(t, e.Snapshot().Room.Objects)
}

func TestFixedObjectsCannotBeTaken(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "study")

	assert.Empty(t, e.Take("puzzlebox").Messages)
	assert.NotNil(t, e.currentRoom().Object("puzzlebox"))
}

func TestSolvePuzzleNeedsMap(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "study")

	res := e.SolvePuzzle("puzzlebox")
	assert.Contains(t, res.Messages, "The symbols are confusing without a reference. You need something to help guide you.")
	assert.Equal(t, 0, res.ScoreDelta)
	assert.NotNil(t, e.currentRoom().Object("puzzlebox"))
	assert.False(t, e.player.Flags.Has(models.FlagSolvedPuzzle))
	assert.Empty(t, e.player.Inventory)
}

func TestSolvePuzzle(t *testing.T) {
	e := newTestEngine()
	e.Take("map")
	placeAt(e, "study")

	res := e.SolvePuzzle("puzzlebox")
	assert.Equal(t, 150, res.ScoreDelta)
	assert.Equal(t, "The Puzzle Box opens, revealing a secret compartment with Ancient Gold Coins!", res.Messages[len(res.Messages)-1])
	assert.Nil(t, e.currentRoom().Object("puzzlebox"))
	assert.True(t, e.player.Flags.Has(models.FlagSolvedPuzzle))
	assert.Equal(t, []string{"Old Map", "Ancient Gold Coins"}, e.Snapshot().Inventory)

	assert.Empty(t, e.SolvePuzzle("puzzlebox").Messages)
	assert.Len(t, e.player.Inventory, 2)
}

func TestSolveIgnoresNonPuzzles(t *testing.T) {
	e := newTestEngine()
	assert.Empty(t, e.SolvePuzzle("map").Messages)
	assert.Empty(t, e.SolvePuzzle("puzzlebox").Messages)
}

func TestOpenChestNeedsKey(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "master_bedroom")

	actions := e.Actions()
	require.NotEmpty(t, actions)
	open := actions[len(actions)-1]
	assert.Equal(t, models.ActionOpen, open.Kind)
	assert.False(t, open.Enabled)

	before := e.Snapshot()
	assert.Empty(t, e.OpenContainer("chest").Messages)
	assert.Equal(t, before, e.Snapshot())
}

func TestOpenChest(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "dining")
	e.Take("key")
	placeAt(e, "master_bedroom")

	actions := e.Actions()
	assert.True(t, actions[len(actions)-1].Enabled)

	res := e.OpenContainer("chest")
	assert.Equal(t, []string{
		"You use the key to open the Treasure Chest!",
		"Inside you find Jeweled Crown and Precious Gems!",
	}, res.Messages)
	assert.Equal(t, 300, res.ScoreDelta)
	assert.Nil(t, e.currentRoom().Object("chest"))
	assert.Equal(t, []string{"Silver Key", "Jeweled Crown", "Precious Gems"}, e.Snapshot().Inventory)

	assert.Empty(t, e.OpenContainer("chest").Messages)
}
