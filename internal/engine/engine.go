package engine

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tatianab/mansion/internal/models"
	"github.com/tatianab/mansion/internal/world"
)

const welcomeMessage = "Welcome to the Mysterious Mansion! Explore carefully and be prepared for anything..."

// Result describes what a single action did.
type Result struct {
	Messages    []string        `json:"messages"`
	ScoreDelta  int             `json:"scoreDelta"`
	HealthDelta int             `json:"healthDelta"`
	Outcome     *models.Outcome `json:"outcome,omitempty"`
}

// Engine owns one playthrough: the world, the player and the message log.
// It is not safe for concurrent use; give each game its own Engine.
type Engine struct {
	build  func() *world.World
	roller Roller
	logger *logrus.Entry

	world   *world.World
	player  *models.Player
	log     *models.MessageLog
	riddle  *models.Riddle
	outcome *models.Outcome
	turns   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoller sets the source of combat rolls.
func WithRoller(r Roller) Option {
	return func(e *Engine) { e.roller = r }
}

// WithLogger sets the logger actions are reported to.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = logrus.NewEntry(l) }
}

// WithLogEntry is WithLogger for an entry that already carries fields, such
// as the connection a game is played on.
func WithLogEntry(entry *logrus.Entry) Option {
	return func(e *Engine) { e.logger = entry }
}

// WithWorld replaces the mansion with worlds produced by build. It is called
// on creation and on every Reset.
func WithWorld(build func() *world.World) Option {
	return func(e *Engine) { e.build = build }
}

// New creates an engine and starts a fresh game.
func New(opts ...Option) *Engine {
	e := &Engine{build: world.Default}
	for _, opt := range opts {
		opt(e)
	}
	if e.roller == nil {
		e.roller = NewRoller(0)
	}
	if e.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.logger = logrus.NewEntry(l)
	}
	e.Reset()
	return e
}

// Reset throws away all state and starts over from the entrance.
func (e *Engine) Reset() {
	e.world = e.build()
	e.player = models.NewPlayer(e.world.Start)
	e.log = models.NewMessageLog(models.MaxMessages)
	e.riddle = nil
	e.outcome = nil
	e.turns = 0
	e.log.Add(welcomeMessage)
	e.logger.WithField("room", e.player.Room).Info("new game started")
}

// Outcome returns the terminal outcome, or nil while the game is running.
func (e *Engine) Outcome() *models.Outcome {
	if e.outcome == nil {
		return nil
	}
	o := *e.outcome
	return &o
}

// Turns counts the actions accepted since the last reset.
func (e *Engine) Turns() int { return e.turns }

// Dispatch routes a command to its handler. Unknown kinds do nothing.
func (e *Engine) Dispatch(cmd models.Command) Result {
	switch cmd.Kind {
	case models.ActionMove:
		return e.Move(cmd.Target)
	case models.ActionFight:
		return e.Fight(cmd.Target)
	case models.ActionTalk:
		return e.Talk(cmd.Target)
	case models.ActionTake:
		return e.Take(cmd.Target)
	case models.ActionSolve:
		return e.SolvePuzzle(cmd.Target)
	case models.ActionOpen:
		return e.OpenContainer(cmd.Target)
	case models.ActionAnswer:
		return e.SubmitRiddleAnswer(cmd.Target)
	}
	return Result{}
}

// Snapshot returns a copy of everything the player can currently see.
func (e *Engine) Snapshot() models.Snapshot {
	room := e.currentRoom()
	view := models.RoomView{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Characters:  []models.Entity{},
		Objects:     []models.Entity{},
		Exits:       []string{},
	}
	for _, c := range room.Characters {
		view.Characters = append(view.Characters, models.Entity{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	for _, o := range room.VisibleObjects() {
		view.Objects = append(view.Objects, models.Entity{ID: o.ID, Name: o.Name, Description: o.Description})
	}
	for _, x := range room.Exits {
		view.Exits = append(view.Exits, x.Direction)
	}

	inventory := make([]string, 0, len(e.player.Inventory))
	for _, it := range e.player.Inventory {
		inventory = append(inventory, it.Name)
	}

	snap := models.Snapshot{
		Room:      view,
		Health:    e.player.Health,
		Score:     e.player.Score,
		Inventory: inventory,
		Messages:  e.log.Messages(),
		Actions:   e.Actions(),
		Outcome:   e.Outcome(),
	}
	if e.riddle != nil {
		r := *e.riddle
		snap.Riddle = &r
	}
	return snap
}

// Actions lists what the player may do right now: exits first, then
// characters, then visible objects, in room order.
func (e *Engine) Actions() []models.Command {
	if e.outcome != nil {
		return []models.Command{}
	}
	if e.riddle != nil {
		return []models.Command{{Kind: models.ActionAnswer, Label: "Answer the riddle", Enabled: true}}
	}

	room := e.currentRoom()
	var out []models.Command
	for _, x := range room.Exits {
		out = append(out, models.Command{Kind: models.ActionMove, Target: x.Direction, Label: capitalize(x.Direction), Enabled: true})
	}
	for _, c := range room.Characters {
		if c.Hostile {
			out = append(out, models.Command{Kind: models.ActionFight, Target: c.ID, Label: "Fight " + c.Name, Enabled: true})
		} else {
			out = append(out, models.Command{Kind: models.ActionTalk, Target: c.ID, Label: "Talk to " + c.Name, Enabled: true})
		}
	}
	for _, o := range room.VisibleObjects() {
		switch {
		case o.CanTake:
			out = append(out, models.Command{Kind: models.ActionTake, Target: o.ID, Label: "Take " + o.Name, Enabled: true})
		case o.IsPuzzle:
			out = append(out, models.Command{Kind: models.ActionSolve, Target: o.ID, Label: "Solve " + o.Name, Enabled: true})
		case o.RequiresKey:
			out = append(out, models.Command{Kind: models.ActionOpen, Target: o.ID, Label: "Open " + o.Name, Enabled: e.player.Flags.Has(models.FlagHasKey)})
		}
	}
	return out
}

func (e *Engine) currentRoom() *world.Room {
	return e.world.Room(e.player.Room)
}

// accepting reports whether ordinary actions may run: not while the game is
// over or a riddle is waiting for its answer.
func (e *Engine) accepting() bool {
	return e.outcome == nil && e.riddle == nil
}

// turn accumulates the effects of one accepted action.
type turn struct {
	e      *Engine
	action models.ActionKind
	target string
	score  int
	health int
	res    Result
}

func (e *Engine) begin(action models.ActionKind, target string) *turn {
	e.turns++
	return &turn{e: e, action: action, target: target, score: e.player.Score, health: e.player.Health}
}

func (t *turn) say(msgs ...string) {
	t.res.Messages = append(t.res.Messages, msgs...)
	t.e.log.Add(msgs...)
}

func (t *turn) gameOver(won bool, message string) {
	t.e.outcome = &models.Outcome{Won: won, Message: message, FinalScore: t.e.player.Score}
	o := *t.e.outcome
	t.res.Outcome = &o
	t.e.logger.WithFields(logrus.Fields{"won": won, "score": o.FinalScore}).Info("game over")
}

func (t *turn) end() Result {
	p := t.e.player
	t.res.ScoreDelta = p.Score - t.score
	t.res.HealthDelta = p.Health - t.health
	t.e.logger.WithFields(logrus.Fields{
		"action": t.action,
		"target": t.target,
		"room":   p.Room,
		"health": p.Health,
		"score":  p.Score,
	}).Debug("action resolved")
	return t.res
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
