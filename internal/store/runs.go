package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"
)

// Run is one journaled generation. Seed is nil for clock-seeded runs.
// CorpusMtime is the newest corpus file mtime in unix seconds.
type Run struct {
	ID           int64
	WindowLength int
	Seed         *int64
	InitialText  string
	TargetLength int
	Output       string
	StopReason   string
	CorpusKey    string
	CorpusHash   string
	CorpusMtime  int64
	CreatedAt    time.Time
}

type RunStore interface {
	SaveRun(r Run) (int64, error)
	RecentRuns(limit int) ([]Run, error)
}

type SQLRunStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLRunStore(db *sql.DB) RunStore {
	return &SQLRunStore{db: db, now: time.Now}
}

// Hash returns the hex sha256 digest used to identify a corpus.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (s *SQLRunStore) SaveRun(r Run) (int64, error) {
	var seed sql.NullInt64
	if r.Seed != nil {
		seed = sql.NullInt64{Int64: *r.Seed, Valid: true}
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	res, err := s.db.Exec(`
        INSERT INTO runs(window_length, seed, initial_text, target_length, output, stop_reason, corpus_key, corpus_hash, corpus_mtime, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.WindowLength, seed, r.InitialText, r.TargetLength, r.Output, r.StopReason, r.CorpusKey, r.CorpusHash, r.CorpusMtime, createdAt.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLRunStore) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
        SELECT id, window_length, seed, initial_text, target_length, output, stop_reason, corpus_key, corpus_hash, corpus_mtime, created_at
        FROM runs
        ORDER BY created_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			seed      sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.WindowLength, &seed, &r.InitialText, &r.TargetLength,
			&r.Output, &r.StopReason, &r.CorpusKey, &r.CorpusHash, &r.CorpusMtime, &createdAt); err != nil {
			return nil, err
		}
		if seed.Valid {
			v := seed.Int64
			r.Seed = &v
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
