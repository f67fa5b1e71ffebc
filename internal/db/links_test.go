package db

import (
	"testing"

	"github.com/asteroid-belt/themebuddy/internal/models"
)

func TestReplaceLinks(t *testing.T) {
	db := testDB(t)

	err := db.ReplaceLinks(models.BarNavbar, []LinkInput{
		{Label: "Docs", URL: "https://example.com/docs"},
		{Label: "Blog", URL: "https://example.com/blog"},
	})
	if err != nil {
		t.Fatalf("ReplaceLinks() error = %v", err)
	}
	if err := db.ReplaceLinks(models.BarStatusbar, []LinkInput{{Label: "Help", URL: "mailto:help@example.com"}}); err != nil {
		t.Fatalf("ReplaceLinks() error = %v", err)
	}

	nav, err := db.ListLinks(models.BarNavbar)
	if err != nil {
		t.Fatalf("ListLinks() error = %v", err)
	}
	if len(nav) != 2 || nav[0].Label != "Docs" || nav[1].Position != 1 {
		t.Errorf("unexpected navbar %+v", nav)
	}

	// Replacing shrinks the bar and leaves the other bar untouched.
	if err := db.ReplaceLinks(models.BarNavbar, []LinkInput{{Label: "Home", URL: "https://example.com"}}); err != nil {
		t.Fatalf("ReplaceLinks() error = %v", err)
	}
	nav, _ = db.ListLinks(models.BarNavbar)
	if len(nav) != 1 || nav[0].Label != "Home" {
		t.Errorf("unexpected navbar %+v", nav)
	}

	n, err := db.CountLinks()
	if err != nil {
		t.Fatalf("CountLinks() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountLinks() = %d, want 2", n)
	}
}
