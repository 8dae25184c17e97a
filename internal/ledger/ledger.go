package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	status       TEXT NOT NULL,
	confidence   REAL NOT NULL,
	errors       TEXT NOT NULL DEFAULT '[]',
	processed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_processed_at ON documents (processed_at);
`

// Entry is one per-document outcome row in the audit ledger.
type Entry struct {
	ID          uuid.UUID
	Filename    string
	Status      constants.ProcessStatus
	Confidence  float64
	Errors      []string
	ProcessedAt time.Time
}

// Store is a SQLite-backed audit ledger recording every processing outcome,
// success and exception alike.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the ledger database at path.
// Use ":memory:" for an ephemeral ledger.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open ledger")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "apply ledger schema")
	}
	logger.Debug("ledger opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one outcome row. Rows are append-only.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Errors == nil {
		e.Errors = []string{}
	}
	errsJSON, err := json.Marshal(e.Errors)
	if err != nil {
		return common.WrapError(err, "marshal errors")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, status, confidence, errors, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(),
		e.Filename,
		string(e.Status),
		e.Confidence,
		string(errsJSON),
		e.ProcessedAt.UTC().Format(time.RFC3339Nano),
	)
	return common.WrapError(err, "insert ledger entry")
}

// List returns all entries ordered by processing time.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, status, confidence, errors, processed_at
		 FROM documents ORDER BY processed_at, id`)
	if err != nil {
		return nil, common.WrapError(err, "query ledger")
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var (
			id, status, errsJSON, processedAt string
			e                                 Entry
		)
		if err := rows.Scan(&id, &e.Filename, &status, &e.Confidence, &errsJSON, &processedAt); err != nil {
			return nil, common.WrapError(err, "scan ledger row")
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, common.WrapError(err, "parse entry id")
		}
		e.Status = constants.ProcessStatus(status)
		if err := json.Unmarshal([]byte(errsJSON), &e.Errors); err != nil {
			return nil, common.WrapError(err, "decode entry errors")
		}
		if e.ProcessedAt, err = time.Parse(time.RFC3339Nano, processedAt); err != nil {
			return nil, common.WrapError(err, "parse entry timestamp")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
