package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/mansion/internal/models"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

//go:embed prompts/choose_action.txt
var chooseActionPrompt string

var prompts = template.Must(
	template.New("describe_room").Funcs(template.FuncMap{"join": strings.Join}).Parse(describeRoomPrompt),
)

func init() {
	template.Must(prompts.New("choose_action").Parse(chooseActionPrompt))
}

// generator is the part of *genai.GenerativeModel the narrator uses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Narrator retells scenes and plays turns with Gemini. It only reads
// snapshots and never touches the game itself.
type Narrator struct {
	client *genai.Client
	model  generator
}

func New(ctx context.Context, apiKey string) (*Narrator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Narrator{
		client: client,
		model:  client.GenerativeModel("gemini-2.5-flash"),
	}, nil
}

func (n *Narrator) Close() {
	if n.client != nil {
		n.client.Close()
	}
}

// Describe returns an atmospheric retelling of the current room.
func (n *Narrator) Describe(ctx context.Context, snap models.Snapshot) (string, error) {
	return n.generate(ctx, "describe_room", snap)
}

// ChooseAction asks the model to pick one of the snapshot's enabled actions,
// or to answer the pending riddle.
func (n *Narrator) ChooseAction(ctx context.Context, snap models.Snapshot) (models.Command, error) {
	text, err := n.generate(ctx, "choose_action", snap)
	if err != nil {
		return models.Command{}, err
	}
	if snap.Riddle != nil {
		return models.Command{Kind: models.ActionAnswer, Target: text, Enabled: true}, nil
	}
	return parseChoice(text, snap.Actions)
}

func parseChoice(text string, actions []models.Command) (models.Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return models.Command{}, fmt.Errorf("narrator returned no action")
	}
	i, err := strconv.Atoi(strings.Trim(fields[0], ".:)"))
	if err != nil {
		return models.Command{}, fmt.Errorf("narrator did not return an action number: %q", text)
	}
	if i < 0 || i >= len(actions) || !actions[i].Enabled {
		return models.Command{}, fmt.Errorf("narrator chose unavailable action %d", i)
	}
	return actions[i], nil
}

func (n *Narrator) generate(ctx context.Context, name string, snap models.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, snap); err != nil {
		return "", err
	}

	resp, err := n.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}
