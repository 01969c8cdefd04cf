package engine

import (
	"github.com/tatianab/mansion/internal/models"
)

// Scoring and combat constants.
const (
	defeatScore    = 100
	puzzleScore    = 150
	containerScore = 300
	weaponPenalty  = 30
)

var (
	playerDamage = damageRange{min: 20, max: 49}
	enemyDamage  = damageRange{min: 10, max: 29}
)

type damageRange struct{ min, max int }

// takeEffect is applied when the player picks up the object with a given id.
type takeEffect struct {
	flag  models.Flag
	score int
}

var takeEffects = map[string]takeEffect{
	"key":     {flag: models.FlagHasKey},
	"sword":   {flag: models.FlagHasSword},
	"map":     {flag: models.FlagHasMap, score: 25},
	"lantern": {flag: models.FlagHasLantern},
	"goblet":  {score: 50},
}

// weaponGates lists foes that maul an unarmed player instead of fighting.
var weaponGates = map[string]models.Flag{
	"ghost": models.FlagHasSword,
	"demon": models.FlagHasSword,
}

// defeatEffect is applied after the character with a given id is defeated.
type defeatEffect struct {
	flag    models.Flag
	reveal  string
	bonus   int
	message string
}

var defeatEffects = map[string]defeatEffect{
	"ghost": {
		flag:    models.FlagKilledGhost,
		reveal:  "sword",
		message: "A mystical sword appears where the ghost fell!",
	},
	"demon": {
		bonus:   200,
		message: "You've destroyed the shadow demon! The mansion feels lighter.",
	},
}

// darkRooms warn a player entering without the listed flag.
var darkRooms = map[string]models.Flag{
	"attic": models.FlagHasLantern,
}

type riddle struct {
	greeting string
	question string
	hint     string
	answers  []string
	reward   string
	correct  string
	wrong    string
	solved   string
}

var riddles = map[string]riddle{
	"sprite": {
		greeting: "'Answer my riddle and I'll give you something useful!'",
		question: "'I provide light in the darkest night, without me shadows cause fright. What am I?'",
		hint:     "Type your answer: (Hint: You need this to explore dark places)",
		answers:  []string{"lantern", "light", "lamp"},
		reward:   "lantern",
		correct:  "'Correct! Take this lantern, it will serve you well!'",
		wrong:    "'Wrong answer! Try again later.'",
		solved:   "'You've already solved my riddle!'",
	},
}

// Progress required before the owner's spirit lets the player win.
var (
	requiredFlags = []models.Flag{
		models.FlagHasMap,
		models.FlagHasKey,
		models.FlagHasSword,
		models.FlagHasLantern,
	}
	treasures = []string{"crown", "goblet", "coins"}
)

// HasWon reports whether the player holds everything the mansion's owner
// asks for: the map, key, sword and lantern, at least one treasure, and a
// solved puzzle.
func HasWon(p *models.Player) bool {
	for _, f := range requiredFlags {
		if !p.Flags.Has(f) {
			return false
		}
	}
	hasTreasure := false
	for _, id := range treasures {
		if p.HasItem(id) {
			hasTreasure = true
			break
		}
	}
	return hasTreasure && p.Flags.Has(models.FlagSolvedPuzzle)
}
