package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/data/pgxutil"
	"github.com/target/text2ture/internal/domain/model"
	apperrors "github.com/target/text2ture/internal/errors"
)

const (
	defaultJournalListLimit = 50
	maxJournalListLimit     = 500
)

// OutcomeJournalRepo stores job attempt history in Postgres.
type OutcomeJournalRepo struct {
	db *sql.DB
}

var _ core.OutcomeJournal = (*OutcomeJournalRepo)(nil)

// NewOutcomeJournalRepo creates a journal over db.
func NewOutcomeJournalRepo(db *sql.DB) *OutcomeJournalRepo {
	return &OutcomeJournalRepo{db: db}
}

// Append inserts one attempt row. Attempt ids are unique; re-appending the same attempt is a conflict.
func (r *OutcomeJournalRepo) Append(ctx context.Context, entry model.OutcomeEntry) error {
	if r == nil || r.db == nil {
		return ErrJournalNotConfigured
	}
	if err := model.ValidateUID(entry.UID); err != nil {
		return err
	}
	if entry.Status != model.JobStatusCompleted && entry.Status != model.JobStatusError {
		return fmt.Errorf("journal entries must be terminal, got %q", entry.Status)
	}

	var artifact []byte
	if entry.Artifact != nil {
		raw, err := json.Marshal(entry.Artifact)
		if err != nil {
			return fmt.Errorf("encode artifact: %w", err)
		}
		artifact = raw
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const q = `
		INSERT INTO job_outcomes (uid, attempt_id, status, artifact, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, q,
		entry.UID, entry.AttemptID, string(entry.Status), artifact, entry.Error, max(entry.DurationMS, 0), createdAt,
	); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

type outcomeRow struct {
	ID         int64     `db:"id"`
	UID        string    `db:"uid"`
	AttemptID  string    `db:"attempt_id"`
	Status     string    `db:"status"`
	Artifact   []byte    `db:"artifact"`
	Error      string    `db:"error"`
	DurationMS int64     `db:"duration_ms"`
	CreatedAt  time.Time `db:"created_at"`
}

// ListByUID returns the newest attempts for uid first.
func (r *OutcomeJournalRepo) ListByUID(ctx context.Context, uid string, limit int) ([]model.OutcomeEntry, error) {
	if r == nil || r.db == nil {
		return nil, ErrJournalNotConfigured
	}
	if err := model.ValidateUID(uid); err != nil {
		return nil, err
	}
	limit = clampJournalLimit(limit)

	const q = `
		SELECT id, uid, attempt_id::text AS attempt_id, status, artifact, error, duration_ms, created_at
		FROM job_outcomes
		WHERE uid = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	var rows []outcomeRow
	err := pgxutil.WithPgxConn(ctx, r.db, func(conn *pgx.Conn) error {
		pgRows, err := conn.Query(ctx, q, uid, limit)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(pgRows, pgx.RowToStructByName[outcomeRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	out := make([]model.OutcomeEntry, 0, len(rows))
	for _, row := range rows {
		entry := model.OutcomeEntry{
			ID:         row.ID,
			UID:        row.UID,
			AttemptID:  row.AttemptID,
			Status:     model.JobStatus(row.Status),
			Error:      row.Error,
			DurationMS: row.DurationMS,
			CreatedAt:  row.CreatedAt,
		}
		if len(row.Artifact) > 0 {
			if err := json.Unmarshal(row.Artifact, &entry.Artifact); err != nil {
				return nil, fmt.Errorf("decode artifact for attempt %s: %w", row.AttemptID, err)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func clampJournalLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultJournalListLimit
	case limit > maxJournalListLimit:
		return maxJournalListLimit
	default:
		return limit
	}
}
