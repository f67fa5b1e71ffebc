package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asteroid-belt/themebuddy/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dirs", "themebuddy.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
	}
}

func TestNew_SeedsUserState(t *testing.T) {
	db := testDB(t)

	state, err := db.GetUserState()
	if err != nil {
		t.Fatalf("GetUserState() error = %v", err)
	}
	if state.ID != models.DefaultUserStateID {
		t.Errorf("ID = %q, want %q", state.ID, models.DefaultUserStateID)
	}
	if state.Collection() != models.DefaultCollectionName {
		t.Errorf("Collection() = %q, want %q", state.Collection(), models.DefaultCollectionName)
	}
}

func TestTrackingID_IsStable(t *testing.T) {
	db := testDB(t)

	first := db.GetOrCreateTrackingID()
	if first == "" {
		t.Fatal("empty tracking ID")
	}
	if second := db.GetOrCreateTrackingID(); second != first {
		t.Errorf("tracking ID changed: %q then %q", first, second)
	}
}

func TestSetActiveCollection(t *testing.T) {
	db := testDB(t)
	_ = db.GetOrCreateTrackingID()

	if err := db.SetActiveCollection("Brand"); err != nil {
		t.Fatalf("SetActiveCollection() error = %v", err)
	}
	state, err := db.GetUserState()
	if err != nil {
		t.Fatalf("GetUserState() error = %v", err)
	}
	if state.ActiveCollection != "Brand" {
		t.Errorf("ActiveCollection = %q, want Brand", state.ActiveCollection)
	}
	if state.TrackingID == "" {
		t.Error("SetActiveCollection cleared the tracking ID")
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	db := testDB(t)

	err := db.Transaction(func(tx *DB) error {
		if _, err := tx.EnsureCollection("Temp", "light"); err != nil {
			return err
		}
		return os.ErrInvalid
	})
	if err != os.ErrInvalid {
		t.Fatalf("Transaction() error = %v, want %v", err, os.ErrInvalid)
	}

	cs, err := db.ListCollections()
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(cs) != 0 {
		t.Errorf("collections after rollback = %d, want 0", len(cs))
	}
}
