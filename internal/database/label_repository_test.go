package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestLabelPersistence tests that labels are properly saved and retrieved
func TestLabelPersistence(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	label, err := CreateLabel(ctx, db, "bug", "#FF0000")
	if err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}
	if label.ID == 0 {
		t.Error("Label should have a valid ID")
	}
	if _, err := CreateLabel(ctx, db, "api", "#00FF00"); err != nil {
		t.Fatalf("Failed to create label: %v", err)
	}

	labels, err := GetAllLabels(ctx, db)
	if err != nil {
		t.Fatalf("Failed to get labels: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
	if labels[0].Name != "api" || labels[1].Name != "bug" {
		t.Errorf("labels not ordered by name: %+v", labels)
	}
}

// TestTicketLabelAssociation tests replacing a ticket's labels
func TestTicketLabelAssociation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ticket, err := CreateTicket(ctx, db, "Crash")
	if err != nil {
		t.Fatalf("Failed to create ticket: %v", err)
	}
	bug, _ := CreateLabel(ctx, db, "bug", "#FF0000")
	ui, _ := CreateLabel(ctx, db, "ui", "#0000FF")

	if err := SetTicketLabels(ctx, db, ticket, []int{bug.ID, ui.ID, ui.ID}); err != nil {
		t.Fatalf("Failed to set ticket labels: %v", err)
	}
	labels, err := GetLabelsForTicket(ctx, db, ticket)
	if err != nil {
		t.Fatalf("Failed to get labels for ticket: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}

	if err := SetTicketLabels(ctx, db, ticket, []int{}); err != nil {
		t.Fatalf("Failed to clear ticket labels: %v", err)
	}
	labels, _ = GetLabelsForTicket(ctx, db, ticket)
	if len(labels) != 0 {
		t.Errorf("Expected no labels after clearing, got %d", len(labels))
	}
}

func TestSetTicketLabels_UnknownTicket(t *testing.T) {
	db := setupTestDB(t)
	err := SetTicketLabels(context.Background(), db, 42, []int{1})
	if !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("SetTicketLabels() error = %v, want ErrTicketNotFound", err)
	}
}

func TestSetTicketLabels_UnknownLabel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ticket, _ := CreateTicket(ctx, db, "Crash")

	if err := SetTicketLabels(ctx, db, ticket, []int{999}); err == nil {
		t.Error("expected foreign key failure for unknown label")
	}
}

func TestApplySeed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := ApplySeed(ctx, db, []byte(DefaultSeed)); err != nil {
		t.Fatalf("ApplySeed() failed: %v", err)
	}

	labels, _ := GetAllLabels(ctx, db)
	if len(labels) != 5 {
		t.Errorf("Expected 5 seeded labels, got %d", len(labels))
	}
	ticketLabels, _ := GetLabelsForTicket(ctx, db, 2)
	if len(ticketLabels) != 2 {
		t.Errorf("Expected ticket 2 to have 2 labels, got %d", len(ticketLabels))
	}
}

func TestApplySeed_UnknownLabelName(t *testing.T) {
	db := setupTestDB(t)
	seed := `tickets:
  - {title: "x", labels: [nope]}
`
	if err := ApplySeed(context.Background(), db, []byte(seed)); err == nil {
		t.Error("expected error for unknown label name")
	}
}
