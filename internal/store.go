package internal

import (
	"database/sql"
	"encoding/xml"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// Store keys shared by all host schemas.
const (
	// mementoChatKey is the well-known ItemTable key holding the chat
	// state in the table-backed (VS Code / Cursor) stores.
	mementoChatKey = "memento/webviewView.augment-chat"
	// chatStateKey is the stateMap entry holding the chat state in the
	// attribute-map-backed (JetBrains) stores.
	chatStateKey = "CHAT_STATE"
)

// KVPair is one key/value row from a store container.
type KVPair struct {
	Key   string
	Value string
}

// KVStore answers the two query shapes the engine needs against one
// container, read-only.
type KVStore interface {
	// Get returns the value for an exact key, with ok=false when absent.
	Get(key string) (string, bool, error)
	// Scan returns all pairs whose key matches the substring pattern.
	Scan(pattern string) ([]KVPair, error)
}

// SQLiteStore reads the ItemTable key/value table of a state.vscdb file.
// The connection is acquired per query and released unconditionally; it is
// never held across calls.
type SQLiteStore struct {
	path string
	log  *log.Logger
}

// NewSQLiteStore creates a reader for one database file.
func NewSQLiteStore(path string, rt *Runtime) *SQLiteStore {
	return &SQLiteStore{path: path, log: rt.Log}
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path+"?mode=ro")
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &StoreError{Path: s.path, Op: "open", Err: err}
	}
	return db, nil
}

// Get returns the value stored under an exact key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	db, err := s.open()
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var value sql.NullString
	err = db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", key).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		return "", false, nil
	case err != nil:
		if isMissingTable(err) {
			s.log.Debug("container has no ItemTable", "path", s.path)
			return "", false, nil
		}
		return "", false, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// Scan returns every non-null pair whose key contains the pattern.
func (s *SQLiteStore) Scan(pattern string) ([]KVPair, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		"SELECT key, value FROM ItemTable WHERE key LIKE ? AND value IS NOT NULL",
		"%"+pattern+"%")
	if err != nil {
		if isMissingTable(err) {
			s.log.Debug("container has no ItemTable", "path", s.path)
			return nil, nil
		}
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	defer rows.Close()

	var pairs []KVPair
	for rows.Next() {
		var pair KVPair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, &StoreError{Path: s.path, Op: "query", Err: err}
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	return pairs, nil
}

// A container that does not expose the expected table degrades to empty
// rather than failing the run.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// XMLStateStore reads the option map of a JetBrains component file
// (AugmentWebviewStateStore.xml): the component's stateMap option holds
// entries whose attribute values are the stored documents.
type XMLStateStore struct {
	path string
	log  *log.Logger
}

// NewXMLStateStore creates a reader for one component file.
func NewXMLStateStore(path string, rt *Runtime) *XMLStateStore {
	return &XMLStateStore{path: path, log: rt.Log}
}

const stateStoreComponent = "AugmentWebviewStateStore"

type xmlProject struct {
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	Name    string      `xml:"name,attr"`
	Options []xmlOption `xml:"option"`
}

type xmlOption struct {
	Name    string     `xml:"name,attr"`
	Entries []xmlEntry `xml:"map>entry"`
}

type xmlEntry struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

func (s *XMLStateStore) entries() ([]xmlEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "read", Err: err}
	}

	var project xmlProject
	if err := xml.Unmarshal(data, &project); err != nil {
		return nil, &StoreError{Path: s.path, Op: "read", Err: err}
	}

	for _, component := range project.Components {
		if component.Name != stateStoreComponent {
			continue
		}
		for _, option := range component.Options {
			if option.Name == "stateMap" {
				return option.Entries, nil
			}
		}
	}
	// No matching component or option map: empty, not an error.
	s.log.Debug("container has no state-store component", "path", s.path)
	return nil, nil
}

// Get returns the attribute value stored under an exact entry key.
func (s *XMLStateStore) Get(key string) (string, bool, error) {
	entries, err := s.entries()
	if err != nil {
		return "", false, err
	}
	for _, entry := range entries {
		if entry.Key == key && entry.Value != "" {
			return entry.Value, true, nil
		}
	}
	return "", false, nil
}

// Scan returns every entry whose key contains the pattern.
func (s *XMLStateStore) Scan(pattern string) ([]KVPair, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}
	var pairs []KVPair
	for _, entry := range entries {
		if strings.Contains(entry.Key, pattern) && entry.Value != "" {
			pairs = append(pairs, KVPair{Key: entry.Key, Value: entry.Value})
		}
	}
	return pairs, nil
}
