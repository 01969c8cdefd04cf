package models

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// DefaultRecordsDir is where finished games are recorded unless configured
// otherwise.
const DefaultRecordsDir = ".saves"

// Record is the result of a finished playthrough. It holds no game state and
// cannot be used to resume a game.
type Record struct {
	ID         string    `yaml:"id"`
	Won        bool      `yaml:"won"`
	Message    string    `yaml:"message"`
	FinalScore int       `yaml:"final_score"`
	Turns      int       `yaml:"turns"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// NewRecord builds a record for a terminal outcome.
func NewRecord(o Outcome, turns int, now time.Time) Record {
	return Record{
		ID:         ulid.Make().String(),
		Won:        o.Won,
		Message:    o.Message,
		FinalScore: o.FinalScore,
		Turns:      turns,
		FinishedAt: now.UTC(),
	}
}

// Save writes the record to dir as <id>.yaml.
func (r Record) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, r.ID+".yaml"), data, 0644)
}

// ListRecords loads every record in dir, most recent first. A missing
// directory yields no records.
func ListRecords(dir string) ([]Record, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []Record{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var r Record
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse record %s: %w", entry.Name(), err)
		}
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b Record) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	return records, nil
}

// BestScore returns the highest final score among records, or 0.
func BestScore(records []Record) int {
	if len(records) == 0 {
		return 0
	}
	return slices.MaxFunc(records, func(a, b Record) int {
		return cmp.Compare(a.FinalScore, b.FinalScore)
	}).FinalScore
}
