// Package persistence provides the SQLite store behind the two things that
// outlive a session: the model-download consent flag and the encounter
// transcript archive. Game state itself is ephemeral by design.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/haggle/internal/shop"
)

const consentKey = "model_download_consent"

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transcripts (
		id TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		customer TEXT NOT NULL,
		item TEXT NOT NULL,
		result TEXT NOT NULL,
		price INTEGER NOT NULL,
		rep_delta INTEGER NOT NULL,
		turns_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transcripts_day ON transcripts(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Consent reports whether the user has consented to downloading the agent
// model. Missing means not yet asked.
func (db *DB) Consent() (bool, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM settings WHERE key = ?", consentKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read consent: %w", err)
	}
	return value == "true", nil
}

// SetConsent records the consent decision.
func (db *DB) SetConsent(granted bool) error {
	value := "false"
	if granted {
		value = "true"
	}
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		consentKey, value,
	)
	return err
}

// SaveOutcome appends one concluded encounter to the archive.
func (db *DB) SaveOutcome(o shop.Outcome) error {
	turnsJSON, err := json.Marshal(o.Turns)
	if err != nil {
		return fmt.Errorf("marshal turns: %w", err)
	}
	_, err = db.conn.Exec(`INSERT INTO transcripts
		(id, day, customer, item, result, price, rep_delta, turns_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Day, o.Customer, o.Item, o.Result, o.Price, o.RepDelta,
		string(turnsJSON), o.At.UTC().Format("2006-01-02T15:04:05Z"),
	)
	if err != nil {
		return fmt.Errorf("insert transcript %s: %w", o.ID, err)
	}
	return nil
}

// transcriptRow is the flat DB shape of an archived encounter.
type transcriptRow struct {
	ID        string `db:"id"`
	Day       int    `db:"day"`
	Customer  string `db:"customer"`
	Item      string `db:"item"`
	Result    string `db:"result"`
	Price     int    `db:"price"`
	RepDelta  int    `db:"rep_delta"`
	TurnsJSON string `db:"turns_json"`
	CreatedAt string `db:"created_at"`
}

// Transcript is an archived encounter as returned to readers.
type Transcript struct {
	ID        string          `json:"id"`
	Day       int             `json:"day"`
	Customer  string          `json:"customer"`
	Item      string          `json:"item"`
	Result    string          `json:"result"`
	Price     int             `json:"price"`
	RepDelta  int             `json:"rep_delta"`
	Turns     json.RawMessage `json:"turns"`
	CreatedAt string          `json:"created_at"`
}

// RecentTranscripts returns the most recent N archived encounters.
func (db *DB) RecentTranscripts(limit int) ([]Transcript, error) {
	var rows []transcriptRow
	err := db.conn.Select(&rows,
		`SELECT id, day, customer, item, result, price, rep_delta, turns_json, created_at
		 FROM transcripts ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	out := make([]Transcript, 0, len(rows))
	for _, r := range rows {
		out = append(out, Transcript{
			ID:        r.ID,
			Day:       r.Day,
			Customer:  r.Customer,
			Item:      r.Item,
			Result:    r.Result,
			Price:     r.Price,
			RepDelta:  r.RepDelta,
			Turns:     json.RawMessage(r.TurnsJSON),
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
