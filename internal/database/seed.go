package database

import (
	"context"
	"database/sql"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Seed describes initial labels and tickets
type Seed struct {
	Labels []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
	} `yaml:"labels"`
	Tickets []struct {
		Title  string   `yaml:"title"`
		Labels []string `yaml:"labels"` // label names
	} `yaml:"tickets"`
}

// DefaultSeed is loaded when no seed file is given
const DefaultSeed = `labels:
  - {name: bug, color: "#EF4444"}
  - {name: docs, color: "#EAB308"}
  - {name: feature, color: "#22C55E"}
  - {name: ui, color: "#3B82F6"}
  - {name: wontfix, color: "#F3F4F6"}
tickets:
  - {title: "Crash on empty filter", labels: [bug]}
  - {title: "Document label endpoint", labels: [docs, feature]}
`

// ApplySeed parses YAML seed data and inserts it
func ApplySeed(ctx context.Context, db *sql.DB, data []byte) error {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	byName := make(map[string]int, len(seed.Labels))
	for _, l := range seed.Labels {
		color := l.Color
		if color == "" {
			color = "#ffffff"
		}
		label, err := CreateLabel(ctx, db, l.Name, color)
		if err != nil {
			return fmt.Errorf("seed label %q: %w", l.Name, err)
		}
		byName[l.Name] = label.ID
	}

	for _, t := range seed.Tickets {
		id, err := CreateTicket(ctx, db, t.Title)
		if err != nil {
			return fmt.Errorf("seed ticket %q: %w", t.Title, err)
		}
		var ids []int
		for _, name := range t.Labels {
			labelID, ok := byName[name]
			if !ok {
				return fmt.Errorf("seed ticket %q: unknown label %q", t.Title, name)
			}
			ids = append(ids, labelID)
		}
		if err := SetTicketLabels(ctx, db, id, ids); err != nil {
			return fmt.Errorf("seed ticket %q labels: %w", t.Title, err)
		}
	}
	return nil
}
