// Package selection holds the label selection for one ticket and persists it
// after the user stops editing.
package selection

import (
	"github.com/thenoetrevino/labelpick/internal/models"
)

// Policy controls how initial ids missing from the catalog are resolved
type Policy int

const (
	// DropMissing skips ids that are not in the catalog
	DropMissing Policy = iota

	// KeepMissing keeps a nil entry per unknown id so the selection length
	// matches the initial id list
	KeepMissing
)

// Selection is the ordered list of chosen options. Entries are nil only for
// unknown ids resolved under KeepMissing.
type Selection []*models.Option

// IDs returns the label ids of the selection, skipping nil entries.
// Never returns nil.
func (s Selection) IDs() []int {
	ids := make([]int, 0, len(s))
	for _, o := range s {
		if o != nil {
			ids = append(ids, o.Value)
		}
	}
	return ids
}

// Contains reports whether the label id is selected
func (s Selection) Contains(id int) bool {
	for _, o := range s {
		if o != nil && o.Value == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the selection with the label id removed
func (s Selection) Without(id int) Selection {
	out := make(Selection, 0, len(s))
	for _, o := range s {
		if o != nil && o.Value == id {
			continue
		}
		out = append(out, o)
	}
	return out
}

// BuildOptions converts the catalog into options, preserving order.
func BuildOptions(labels []models.Label) []models.Option {
	options := make([]models.Option, len(labels))
	for i, l := range labels {
		options[i] = models.NewOption(l)
	}
	return options
}

// Resolve maps initial label ids onto options by id.
func Resolve(options []models.Option, ids []int, policy Policy) Selection {
	byID := make(map[int]*models.Option, len(options))
	for i := range options {
		byID[options[i].Value] = &options[i]
	}

	sel := make(Selection, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id]
		if !ok && policy == DropMissing {
			continue
		}
		sel = append(sel, o)
	}
	return sel
}
