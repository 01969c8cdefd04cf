package models

import (
	"slices"

	"github.com/tatianab/mansion/internal/world"
	"github.com/zyedidia/generic/mapset"
)

// Starting values for a new playthrough.
const (
	StartingHealth = 100
	MaxMessages    = 10
)

// Flag is a permanent fact about the player's progress.
type Flag string

const (
	FlagHasKey       Flag = "hasKey"
	FlagHasSword     Flag = "hasSword"
	FlagKilledGhost  Flag = "killedGhost"
	FlagSolvedPuzzle Flag = "solvedPuzzle"
	FlagHasMap       Flag = "hasMap"
	FlagHasLantern   Flag = "hasLantern"
)

// Flags is an append-only set of progress flags. There is no way to clear a
// flag once it is set.
type Flags struct {
	set mapset.Set[Flag]
}

// NewFlags returns an empty flag set.
func NewFlags() *Flags {
	return &Flags{set: mapset.New[Flag]()}
}

// Set records flag. Setting a flag twice is harmless.
func (f *Flags) Set(flag Flag) { f.set.Put(flag) }

// Has reports whether flag has been set.
func (f *Flags) Has(flag Flag) bool { return f.set.Has(flag) }

// Len returns the number of flags set.
func (f *Flags) Len() int { return f.set.Size() }

// List returns the set flags in sorted order.
func (f *Flags) List() []Flag {
	var out []Flag
	f.set.Each(func(flag Flag) {
		out = append(out, flag)
	})
	slices.Sort(out)
	return out
}

// Player is the dynamic state of the player.
type Player struct {
	Room      string
	Health    int
	Score     int
	Inventory []world.Item
	Flags     *Flags
}

// NewPlayer returns a player standing in the given room at full health.
func NewPlayer(start string) *Player {
	return &Player{
		Room:   start,
		Health: StartingHealth,
		Flags:  NewFlags(),
	}
}

// HasItem reports whether an item with the given id is in the inventory.
func (p *Player) HasItem(id string) bool {
	return slices.ContainsFunc(p.Inventory, func(it world.Item) bool { return it.ID == id })
}

// AddScore raises the score. Negative amounts are ignored so the score never
// goes down.
func (p *Player) AddScore(n int) {
	if n > 0 {
		p.Score += n
	}
}

// MessageLog keeps the most recent narrative messages, oldest first.
type MessageLog struct {
	limit    int
	messages []string
}

// NewMessageLog creates a log holding at most limit messages.
func NewMessageLog(limit int) *MessageLog {
	return &MessageLog{limit: limit}
}

// Add appends messages, discarding the oldest ones on overflow.
func (l *MessageLog) Add(msgs ...string) {
	l.messages = append(l.messages, msgs...)
	if over := len(l.messages) - l.limit; over > 0 {
		l.messages = slices.Delete(l.messages, 0, over)
	}
}

// Messages returns a copy of the log.
func (l *MessageLog) Messages() []string {
	return slices.Clone(l.messages)
}

// ActionKind names an engine entry point.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionFight  ActionKind = "fight"
	ActionTalk   ActionKind = "talk"
	ActionTake   ActionKind = "take"
	ActionSolve  ActionKind = "solve"
	ActionOpen   ActionKind = "open"
	ActionAnswer ActionKind = "answer"
)

// Command is a player action. For ActionAnswer the Target carries the
// answer text.
type Command struct {
	Kind    ActionKind `json:"kind" yaml:"kind"`
	Target  string     `json:"target" yaml:"target"`
	Label   string     `json:"label,omitempty" yaml:"label,omitempty"`
	Enabled bool       `json:"enabled" yaml:"enabled"`
}

// Outcome is the terminal result of a playthrough.
type Outcome struct {
	Won        bool   `json:"won" yaml:"won"`
	Message    string `json:"message" yaml:"message"`
	FinalScore int    `json:"finalScore" yaml:"final_score"`
}

// Riddle is a question waiting for the player's answer.
type Riddle struct {
	CharacterID string `json:"characterId"`
	Speaker     string `json:"speaker"`
	Question    string `json:"question"`
}

// Entity is the player-facing view of a character or object.
type Entity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoomView is what the player can see of the current room.
type RoomView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Characters  []Entity `json:"characters"`
	Objects     []Entity `json:"objects"`
	Exits       []string `json:"exits"`
}

// Snapshot is a read-only copy of everything a presentation layer renders.
type Snapshot struct {
	Room      RoomView  `json:"room"`
	Health    int       `json:"health"`
	Score     int       `json:"score"`
	Inventory []string  `json:"inventory"`
	Messages  []string  `json:"messages"`
	Actions   []Command `json:"actions"`
	Riddle    *Riddle   `json:"riddle,omitempty"`
	Outcome   *Outcome  `json:"outcome,omitempty"`
}
