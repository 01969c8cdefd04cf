package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/mansion/internal/models"
	"github.com/tatianab/mansion/internal/world"
)

// Move walks through an exit of the current room. Unknown directions are
// ignored without a message.
func (e *Engine) Move(direction string) Result {
	if !e.accepting() {
		return Result{}
	}
	dest, ok := e.currentRoom().Exit(direction)
	if !ok {
		return Result{}
	}

	t := e.begin(models.ActionMove, direction)
	e.player.Room = dest
	t.say(fmt.Sprintf("You go %s to the %s.", direction, e.currentRoom().Name))
	if flag, dark := darkRooms[dest]; dark && !e.player.Flags.Has(flag) {
		t.say("It's too dark to explore safely without a light source!")
	}
	return t.end()
}

// Fight resolves one exchange of blows with a hostile character in the room.
func (e *Engine) Fight(characterID string) Result {
	if !e.accepting() {
		return Result{}
	}
	room := e.currentRoom()
	c := room.Character(characterID)
	if c == nil || !c.Hostile {
		return Result{}
	}

	t := e.begin(models.ActionFight, characterID)
	p := e.player

	if c.RequiresLight && !p.Flags.Has(models.FlagHasLantern) {
		t.say(fmt.Sprintf("The %s is too powerful to fight in the darkness! You need a light source.", c.Name))
		return t.end()
	}

	if flag, gated := weaponGates[c.ID]; gated && !p.Flags.Has(flag) {
		t.say("You need a weapon to fight supernatural creatures!")
		p.Health -= weaponPenalty
		t.say(fmt.Sprintf("The creature attacks you! You lose %d health.", weaponPenalty))
		if p.Health <= 0 {
			t.gameOver(false, "You were defeated by a supernatural creature!")
		}
		return t.end()
	}

	dealt := e.roll(playerDamage)
	taken := e.roll(enemyDamage)

	c.Health -= dealt
	t.say(fmt.Sprintf("You attack the %s for %d damage!", c.Name, dealt))

	if c.Health <= 0 {
		t.say(fmt.Sprintf("You defeated the %s!", c.Name))
		p.AddScore(defeatScore)
		room.RemoveCharacter(c.ID)

		if fx, ok := defeatEffects[c.ID]; ok {
			if fx.flag != "" {
				p.Flags.Set(fx.flag)
			}
			if fx.reveal != "" {
				room.Reveal(fx.reveal)
			}
			p.AddScore(fx.bonus)
			if fx.message != "" {
				t.say(fx.message)
			}
		}
		return t.end()
	}

	p.Health -= taken
	t.say(fmt.Sprintf("The %s attacks you for %d damage!", c.Name, taken))
	if p.Health <= 0 {
		t.gameOver(false, fmt.Sprintf("You were defeated by the %s!", c.Name))
	}
	return t.end()
}

// Talk speaks with a friendly character in the room. Riddle keepers pose
// their riddle and wait for SubmitRiddleAnswer.
func (e *Engine) Talk(characterID string) Result {
	if !e.accepting() {
		return Result{}
	}
	c := e.currentRoom().Character(characterID)
	if c == nil || c.Hostile {
		return Result{}
	}

	if r, ok := riddles[c.ID]; ok {
		if c.HasRiddle {
			return e.PresentRiddle(characterID)
		}
		t := e.begin(models.ActionTalk, characterID)
		t.say(c.Name + ": " + r.solved)
		return t.end()
	}

	t := e.begin(models.ActionTalk, characterID)
	switch {
	case c.IsFinal && HasWon(e.player):
		t.gameOver(true, "The mansion owner's spirit smiles at you. 'You have collected all the treasures and brought peace to this house. You are truly worthy!' You've won the game!")
	case c.IsFinal:
		t.say("Mansion Owner: 'Collect all the treasures and bring peace to my mansion, then return to me.'")
	default:
		t.say(c.Name + ": " + c.Description)
	}
	return t.end()
}

// PresentRiddle poses a character's riddle. Until SubmitRiddleAnswer is
// called every other action is refused.
func (e *Engine) PresentRiddle(characterID string) Result {
	if !e.accepting() {
		return Result{}
	}
	c := e.currentRoom().Character(characterID)
	if c == nil || !c.HasRiddle {
		return Result{}
	}
	r, ok := riddles[c.ID]
	if !ok {
		return Result{}
	}

	t := e.begin(models.ActionTalk, characterID)
	t.say(c.Name+": "+r.greeting, r.question, r.hint)
	e.riddle = &models.Riddle{CharacterID: c.ID, Speaker: c.Name, Question: r.question}
	return t.end()
}

// SubmitRiddleAnswer answers the pending riddle. A correct answer reveals
// the reward; a wrong one closes the riddle so it can be asked again later.
func (e *Engine) SubmitRiddleAnswer(answer string) Result {
	if e.outcome != nil || e.riddle == nil {
		return Result{}
	}
	pending := e.riddle
	e.riddle = nil

	t := e.begin(models.ActionAnswer, pending.CharacterID)
	room := e.currentRoom()
	c := room.Character(pending.CharacterID)
	r := riddles[pending.CharacterID]
	if c == nil {
		return t.end()
	}

	if !matchesAny(answer, r.answers) {
		t.say(c.Name + ": " + r.wrong)
		return t.end()
	}
	t.say(c.Name + ": " + r.correct)
	if room.Reveal(r.reward) {
		c.HasRiddle = false
	}
	return t.end()
}

func matchesAny(answer string, accepted []string) bool {
	answer = strings.ToLower(answer)
	for _, a := range accepted {
		if strings.Contains(answer, a) {
			return true
		}
	}
	return false
}

// Take moves a visible, portable object from the room to the inventory.
func (e *Engine) Take(objectID string) Result {
	if !e.accepting() {
		return Result{}
	}
	room := e.currentRoom()
	o := room.Object(objectID)
	if o == nil || !o.Visible() || !o.CanTake {
		return Result{}
	}

	t := e.begin(models.ActionTake, objectID)
	p := e.player
	p.Inventory = append(p.Inventory, o.AsItem())
	room.RemoveObject(o.ID)
	t.say(fmt.Sprintf("You take the %s.", o.Name))

	if fx, ok := takeEffects[o.ID]; ok {
		if fx.flag != "" {
			p.Flags.Set(fx.flag)
		}
		p.AddScore(fx.score)
	}
	return t.end()
}

// SolvePuzzle works a puzzle object in the room. It needs the map.
func (e *Engine) SolvePuzzle(objectID string) Result {
	if !e.accepting() {
		return Result{}
	}
	room := e.currentRoom()
	o := room.Object(objectID)
	if o == nil || !o.Visible() || !o.IsPuzzle {
		return Result{}
	}

	t := e.begin(models.ActionSolve, objectID)
	p := e.player
	t.say(fmt.Sprintf("You examine the %s closely. It has symbols that match those on your map!", o.Name))
	if !p.Flags.Has(models.FlagHasMap) {
		t.say("The symbols are confusing without a reference. You need something to help guide you.")
		return t.end()
	}

	t.say("Using the map as a guide, you align the symbols correctly!")
	t.say(fmt.Sprintf("The %s opens, revealing a secret compartment with %s!", o.Name, rewardNames(o.Rewards)))
	p.AddScore(puzzleScore)
	p.Flags.Set(models.FlagSolvedPuzzle)
	room.RemoveObject(o.ID)
	p.Inventory = append(p.Inventory, o.Rewards...)
	return t.end()
}

// OpenContainer unlocks a key-locked container in the room. Without the key
// nothing happens.
func (e *Engine) OpenContainer(objectID string) Result {
	if !e.accepting() {
		return Result{}
	}
	room := e.currentRoom()
	o := room.Object(objectID)
	p := e.player
	if o == nil || !o.Visible() || !o.RequiresKey || !p.Flags.Has(models.FlagHasKey) {
		return Result{}
	}

	t := e.begin(models.ActionOpen, objectID)
	t.say(fmt.Sprintf("You use the key to open the %s!", o.Name))
	t.say(fmt.Sprintf("Inside you find %s!", rewardNames(o.Rewards)))
	p.AddScore(containerScore)
	p.Inventory = append(p.Inventory, o.Rewards...)
	room.RemoveObject(o.ID)
	return t.end()
}

func rewardNames(items []world.Item) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
