package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStateDB creates a file-backed state.vscdb with an ItemTable in dir
// and returns its path.
func CreateStateDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "state.vscdb")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create ItemTable: %v", err)
	}

	return path
}

// CreateEmptyDB creates a file-backed SQLite database without any tables,
// for exercising the missing-table degradation path.
func CreateEmptyDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "state.vscdb")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	// Force the file into existence.
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	return path
}

// InsertItem inserts one key/value row into a state database.
func InsertItem(t *testing.T, path, key, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT OR REPLACE INTO ItemTable (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}
}

// CreateWorkspaceStorage builds a workspaceStorage tree: one workspace
// directory per map entry, each holding a state.vscdb with the chat value
// stored under the memento key.
func CreateWorkspaceStorage(t *testing.T, root string, workspaces map[string]string) {
	t.Helper()
	for id, value := range workspaces {
		dir := filepath.Join(root, id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create workspace dir: %v", err)
		}
		path := CreateStateDB(t, dir)
		InsertItem(t, path, "memento/webviewView.augment-chat", value)
	}
}
