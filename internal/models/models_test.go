package models

import (
	"encoding/json"
	"errors"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Unique(t *testing.T) {
	errs := []error{ErrInvalidTicket, ErrMissingURL, ErrCSRFCookieMissing, ErrNotReady}
	for i := range errs {
		for j := range errs {
			if i != j && errors.Is(errs[i], errs[j]) {
				t.Errorf("%v should not match %v", errs[i], errs[j])
			}
		}
	}
}

// ============================================================================
// Struct Tests
// ============================================================================

func TestLabel_DecodesCatalogRecord(t *testing.T) {
	var l Label
	if err := json.Unmarshal([]byte(`{"pk": 4, "name": "bug", "color": "#ff0000"}`), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if l.ID != 4 || l.Name != "bug" || l.Color != "#ff0000" {
		t.Errorf("decoded %+v", l)
	}
}

func TestNewOption(t *testing.T) {
	o := NewOption(Label{ID: 2, Name: "docs", Color: "#00ff00"})
	if o.Value != 2 || o.Label != "docs" || o.Color != "#00ff00" {
		t.Errorf("NewOption = %+v", o)
	}
}

func TestTicketLabels_EmptyEncodesArray(t *testing.T) {
	b, err := json.Marshal(TicketLabels{Ticket: 7, Labels: []int{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"ticket":7,"labels":[]}` {
		t.Errorf("Marshal = %s", b)
	}
}
