package models

// Label represents a tag that can be applied to tickets.
// Labels are owned by the backend; the widget only reads them.
type Label struct {
	ID    int    `json:"pk"`
	Name  string `json:"name"`
	Color string `json:"color"` // Hex color code (e.g., "#7D56F4")
}

// Option is the selectable view of a Label
type Option struct {
	Value int
	Label string
	Color string
}

// NewOption builds the option for a label
func NewOption(l Label) Option {
	return Option{Value: l.ID, Label: l.Name, Color: l.Color}
}

// TicketLabels is the body of a persistence request
type TicketLabels struct {
	Ticket int   `json:"ticket"`
	Labels []int `json:"labels"`
}
