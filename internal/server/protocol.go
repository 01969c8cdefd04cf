package server

import (
	"github.com/tatianab/mansion/internal/engine"
	"github.com/tatianab/mansion/internal/models"
)

// Client actions besides the engine's own action kinds.
const (
	actionInit  = "init"
	actionReset = "reset"
)

// ClientCommand is a message from the browser.
type ClientCommand struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// ServerResponse answers every client command with the fresh snapshot.
type ServerResponse struct {
	Result   *engine.Result  `json:"result,omitempty"`
	Snapshot models.Snapshot `json:"snapshot"`
	Error    string          `json:"error,omitempty"`
}

func apply(eng *engine.Engine, cmd ClientCommand) ServerResponse {
	var res *engine.Result
	switch kind := models.ActionKind(cmd.Action); kind {
	case actionInit:
	case actionReset:
		eng.Reset()
	case models.ActionAnswer:
		r := eng.SubmitRiddleAnswer(cmd.Answer)
		res = &r
	case models.ActionMove, models.ActionFight, models.ActionTalk, models.ActionTake, models.ActionSolve, models.ActionOpen:
		r := eng.Dispatch(models.Command{Kind: kind, Target: cmd.Target})
		res = &r
	default:
		return ServerResponse{Snapshot: eng.Snapshot(), Error: "unknown action " + cmd.Action}
	}
	return ServerResponse{Result: res, Snapshot: eng.Snapshot()}
}
