package preset

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the documents schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	// Matches the migration
	schema := `
		CREATE TABLE documents (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteRepositoryLoadMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	_, err := repo.Load(context.Background(), StorageKey)
	if !errors.Is(err, ErrNoDocument) {
		t.Errorf("Load() error = %v, want ErrNoDocument", err)
	}
}

func TestSQLiteRepositorySaveAndLoad(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	want := []byte(`{"version":1,"categories":[]}`)
	if err := repo.Save(ctx, StorageKey, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Load(ctx, StorageKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load() = %s, want %s", got, want)
	}
}

func TestSQLiteRepositorySaveOverwrites(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, StorageKey, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	want := []byte(`{"version":1,"categories":[{"id":"c1"}]}`)
	if err := repo.Save(ctx, StorageKey, want); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Load(ctx, StorageKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load() = %s, want %s", got, want)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func TestSQLiteRepositoryKeysAreIndependent(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, "a", []byte(`{"v":"a"}`)); err != nil {
		t.Fatalf("Save(a) error = %v", err)
	}
	if err := repo.Save(ctx, "b", []byte(`{"v":"b"}`)); err != nil {
		t.Fatalf("Save(b) error = %v", err)
	}

	got, err := repo.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load(a) error = %v", err)
	}
	if string(got) != `{"v":"a"}` {
		t.Errorf("Load(a) = %s", got)
	}
}

func TestStoreOverSQLiteRepository(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	store := NewStore(repo)
	ctx := context.Background()

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cat, err := store.SaveCategory(ctx, "", "Evening", nil)
	if err != nil {
		t.Fatalf("SaveCategory() error = %v", err)
	}
	p, err := store.SavePreset(ctx, cat.ID, "", Patch{
		Name: strPtr("Red"), Type: typePtr(TypeRGB), RGBColor: &[3]int{255, 0, 0},
	})
	if err != nil {
		t.Fatalf("SavePreset() error = %v", err)
	}

	reloaded := NewStore(repo)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	got, err := reloaded.GetPresetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPresetByID() error = %v", err)
	}
	if got.RGBColor == nil || *got.RGBColor != [3]int{255, 0, 0} {
		t.Errorf("RGBColor = %v, want [255 0 0]", got.RGBColor)
	}
}
