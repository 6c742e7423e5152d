// Package store provides the SQLite storage layer for the final speech table.
//
// Each run fully replaces the stored speeches, mirroring the CSV output.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/plenary/internal/speech"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store persists speeches in a single SQLite database file.
type Store struct {
	db     *sql.DB
	dbPath string
	log    *logrus.Entry
}

// Filter narrows ListSpeeches. Empty fields match everything. Speaker is a
// case-insensitive substring; Party and SessionID match exactly.
type Filter struct {
	Speaker   string
	Party     string
	SessionID string
	Limit     int
}

// Match reports whether sp passes every field of f except Limit.
func (f Filter) Match(sp speech.Speech) bool {
	if f.Speaker != "" && !strings.Contains(foldSpeaker(sp.Speaker), foldSpeaker(f.Speaker)) {
		return false
	}
	if f.Party != "" && sp.Party != f.Party {
		return false
	}
	if f.SessionID != "" && sp.SessionID != f.SessionID {
		return false
	}
	return true
}

// foldSpeaker is the case folding used for speaker filters. SQLite's own
// LIKE folds ASCII only, so the folded form is stored alongside the name.
func foldSpeaker(name string) string {
	return strings.ToLower(name)
}

// likeEscaper escapes LIKE wildcards for use with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &Store{
		db:     db,
		dbPath: path,
		log:    logrus.WithField("component", "store"),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS speeches (
			u_id        INTEGER PRIMARY KEY,
			session_id  TEXT NOT NULL,
			document_id TEXT NOT NULL,
			date        TEXT NOT NULL,
			is_doctor   INTEGER NOT NULL DEFAULT 0,
			speaker     TEXT NOT NULL,
			speaker_folded TEXT NOT NULL DEFAULT '',
			party       TEXT NOT NULL,
			position    TEXT NOT NULL,
			speech      TEXT NOT NULL,
			wordcount   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_speeches_speaker ON speeches(speaker)`,
		`CREATE INDEX IF NOT EXISTS idx_speeches_party ON speeches(party)`,
		`CREATE INDEX IF NOT EXISTS idx_speeches_session ON speeches(session_id)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return s.migrateSpeakerFolded()
}

// migrateSpeakerFolded adds speaker_folded to databases created before it
// existed and fills it from speaker.
func (s *Store) migrateSpeakerFolded() error {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('speeches') WHERE name='speaker_folded'",
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for speaker_folded column: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE speeches ADD COLUMN speaker_folded TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("adding speaker_folded column: %w", err)
	}

	rows, err := s.db.Query(`SELECT u_id, speaker FROM speeches`)
	if err != nil {
		return fmt.Errorf("reading speakers: %w", err)
	}
	folded := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan speaker: %w", err)
		}
		folded[id] = foldSpeaker(name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for id, name := range folded {
		if _, err := s.db.Exec(`UPDATE speeches SET speaker_folded = ? WHERE u_id = ?`, name, id); err != nil {
			return fmt.Errorf("backfilling speaker_folded: %w", err)
		}
	}
	return nil
}

// ReplaceSpeeches deletes every stored speech and inserts speeches in one
// transaction.
func (s *Store) ReplaceSpeeches(ctx context.Context, speeches []speech.Speech) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM speeches`); err != nil {
		return fmt.Errorf("clearing speeches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO speeches (u_id, session_id, document_id, date, is_doctor, speaker, speaker_folded, party, position, speech, wordcount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sp := range speeches {
		doctor := 0
		if sp.IsDoctor {
			doctor = 1
		}
		if _, err := stmt.ExecContext(ctx, sp.ID, sp.SessionID, sp.DocumentID, sp.Date, doctor,
			sp.Speaker, foldSpeaker(sp.Speaker), sp.Party, sp.Position, sp.Text, sp.WordCount); err != nil {
			return fmt.Errorf("inserting speech %d: %w", sp.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('replaced_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording replacement time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing speeches: %w", err)
	}

	s.log.WithFields(logrus.Fields{"path": s.dbPath, "speeches": len(speeches)}).Info("stored speeches")
	return nil
}

// ListSpeeches returns stored speeches matching f, ordered by id. It selects
// the same rows as Filter.Match.
func (s *Store) ListSpeeches(ctx context.Context, f Filter) ([]speech.Speech, error) {
	var where []string
	var args []any
	if f.Speaker != "" {
		where = append(where, `speaker_folded LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(foldSpeaker(f.Speaker))+"%")
	}
	if f.Party != "" {
		where = append(where, "party = ?")
		args = append(args, f.Party)
	}
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}

	query := `SELECT u_id, session_id, document_id, date, is_doctor, speaker, party, position, speech, wordcount FROM speeches`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY u_id ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query speeches: %w", err)
	}
	defer rows.Close()

	var speeches []speech.Speech
	for rows.Next() {
		var sp speech.Speech
		var doctor int
		if err := rows.Scan(&sp.ID, &sp.SessionID, &sp.DocumentID, &sp.Date, &doctor,
			&sp.Speaker, &sp.Party, &sp.Position, &sp.Text, &sp.WordCount); err != nil {
			return nil, fmt.Errorf("scan speech: %w", err)
		}
		sp.IsDoctor = doctor == 1
		speeches = append(speeches, sp)
	}
	return speeches, rows.Err()
}

// Count returns the number of stored speeches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM speeches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count speeches: %w", err)
	}
	return n, nil
}

// ReplacedAt returns when speeches were last replaced, or the zero time.
func (s *Store) ReplacedAt(ctx context.Context) (time.Time, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'replaced_at'`).Scan(&v)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read replaced_at: %w", err)
	}
	return time.Parse(time.RFC3339, v)
}
