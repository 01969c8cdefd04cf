package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mansion/internal/models"
)

func TestRiddleIsTwoPhase(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "kitchen")

	res := e.Talk("sprite")
	require.Len(t, res.Messages, 3)
	assert.Equal(t, "Kitchen Sprite: 'Answer my riddle and I'll give you something useful!'", res.Messages[0])

	snap := e.Snapshot()
	require.NotNil(t, snap.Riddle)
	assert.Equal(t, "sprite", snap.Riddle.CharacterID)
	assert.Equal(t, []models.Command{{Kind: models.ActionAnswer, Label: "Answer the riddle", Enabled: true}}, snap.Actions)

	// Nothing else happens until the riddle is answered.
	assert.Empty(t, e.Move("south").Messages)
	assert.Empty(t, e.Talk("sprite").Messages)
	assert.Equal(t, "kitchen", e.Snapshot().Room.ID)

	res = e.SubmitRiddleAnswer("An Oil LAMP, surely")
	assert.Equal(t, []string{"Kitchen Sprite: 'Correct! Take this lantern, it will serve you well!'"}, res.Messages)
	assert.Nil(t, e.Snapshot().Riddle)
	assert.False(t, e.currentRoom().Character("sprite").HasRiddle)
	assert.True(t, e.currentRoom().Object("lantern").Visible())
	assert.Contains(t, e.Actions(), models.Command{Kind: models.ActionTake, Target: "lantern", Label: "Take Oil Lantern", Enabled: true})
}

func TestRiddleWrongAnswerCanBeRetried(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "kitchen")

	e.Talk("sprite")
	res := e.SubmitRiddleAnswer("a candle?")
	assert.Equal(t, []string{"Kitchen Sprite: 'Wrong answer! Try again later.'"}, res.Messages)
	assert.Nil(t, e.Snapshot().Riddle)
	assert.True(t, e.currentRoom().Character("sprite").HasRiddle)
	assert.False(t, e.currentRoom().Object("lantern").Visible())
	assert.Equal(t, 0, e.Snapshot().Score)

	assert.Equal(t, "south", e.Actions()[0].Target)

	e.Talk("sprite")
	e.SubmitRiddleAnswer("lantern")
	assert.True(t, e.currentRoom().Object("lantern").Visible())
}

func TestRiddleAlreadySolved(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "kitchen")
	e.Talk("sprite")
	e.SubmitRiddleAnswer("light")
	e.Take("lantern")

	res := e.Talk("sprite")
	assert.Equal(t, []string{"Kitchen Sprite: 'You've already solved my riddle!'"}, res.Messages)
	assert.Nil(t, e.Snapshot().Riddle)
	assert.Empty(t, e.PresentRiddle("sprite").Messages)
	assert.Equal(t, []string{"Oil Lantern"}, e.Snapshot().Inventory)
}

func TestSubmitAnswerWithoutRiddle(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "kitchen")

	res := e.SubmitRiddleAnswer("lantern")
	assert.Empty(t, res.Messages)
	assert.False(t, e.currentRoom().Object("lantern").Visible())
	assert.Equal(t, 0, e.Turns())
}

func TestTalkIgnoresAbsentOrHostileCharacters(t *testing.T) {
	e := newTestEngine()
	assert.Empty(t, e.Talk("sprite").Messages)

	placeAt(e, "library")
	assert.Empty(t, e.Talk("ghost").Messages)
}

func TestOwnerGivesHintUntilWon(t *testing.T) {
	e := newTestEngine()
	placeAt(e, "master_bedroom")

	res := e.Talk("owner")
	assert.Equal(t, []string{"Mansion Owner: 'Collect all the treasures and bring peace to my mansion, then return to me.'"}, res.Messages)
	assert.Nil(t, res.Outcome)

	grantVictory(e.player)
	e.player.Score = 825
	res = e.Talk("owner")
	require.NotNil(t, res.Outcome)
	assert.True(t, res.Outcome.Won)
	assert.Equal(t, 825, res.Outcome.FinalScore)
	assert.Contains(t, res.Outcome.Message, "You've won the game!")
	assert.Equal(t, res.Outcome, e.Snapshot().Outcome)
	assert.Empty(t, e.Actions())
}
