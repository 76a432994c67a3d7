package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Asikur22/daily-tasks-tracker/internal/tracker"
)

// Slot names, kept from the original dataset for drop-in compatibility.
const (
	slotTasks      = "dtt_tasks"
	slotCategories = "dtt_categories"
	slotEntries    = "dtt_entries"
)

// Store persists the three entity collections as JSON slots in a single
// SQLite table. All three slots are replaced inside one transaction, so
// a load never observes a partial save.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS slots (
	slot TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads all three slots. Absent slots load as empty collections;
// the caller decides whether that means a first launch.
func (s *Store) Load() (tracker.State, error) {
	var state tracker.State
	if err := s.loadSlot(slotTasks, &state.Tasks); err != nil {
		return tracker.State{}, err
	}
	if err := s.loadSlot(slotCategories, &state.Categories); err != nil {
		return tracker.State{}, err
	}
	if err := s.loadSlot(slotEntries, &state.Entries); err != nil {
		return tracker.State{}, err
	}
	return state, nil
}

func (s *Store) loadSlot(slot string, dest any) error {
	var data string
	err := s.db.QueryRow(`SELECT data FROM slots WHERE slot = ?;`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("slot %s: %w", slot, err)
	}
	return nil
}

// Save writes all three slots in one transaction.
func (s *Store) Save(state tracker.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveSlot(tx, slotTasks, state.Tasks); err != nil {
		return err
	}
	if err := saveSlot(tx, slotCategories, state.Categories); err != nil {
		return err
	}
	if err := saveSlot(tx, slotEntries, state.Entries); err != nil {
		return err
	}
	return tx.Commit()
}

func saveSlot(tx *sql.Tx, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("slot %s: %w", slot, err)
	}
	_, err = tx.Exec(`INSERT INTO slots (slot, data) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data;`, slot, string(data))
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
