package tasklease

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log"
	"time"

	portsout "payoutd/internal/application/ports/out"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// Store implements the task lease on one table row per task. The row is the
// lock: an insert wins a free lease, an update takes over an expired or
// re-entrant one. Leases expire via until_at, so a crashed holder never
// blocks the task forever.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

var _ portsout.TaskLeaseStore = (*Store)(nil)

func NewStore(db *sql.DB, logger *log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Acquire(ctx context.Context, task string, holder string, until time.Time) (bool, *apperrors.AppError) {
	const insertQuery = `
INSERT INTO app.task_leases (task, holder, until_at)
VALUES ($1, $2, $3)
`

	_, err := s.db.ExecContext(ctx, insertQuery, task, holder, until.UTC())
	if err == nil {
		s.logf("task lease acquired task=%s holder=%s", task, holder)
		return true, nil
	}

	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false, apperrors.NewInternal(
			"task_lease_insert_failed",
			"failed to insert task lease",
			map[string]any{"error": err.Error(), "task": task},
		)
	}

	// The lease row exists. Take it over only if it expired or we already
	// hold it.
	const takeoverQuery = `
UPDATE app.task_leases
SET holder = $2, until_at = $3
WHERE task = $1 AND (until_at < now() OR holder = $2)
`

	result, err := s.db.ExecContext(ctx, takeoverQuery, task, holder, until.UTC())
	if err != nil {
		return false, apperrors.NewInternal(
			"task_lease_takeover_failed",
			"failed to take over task lease",
			map[string]any{"error": err.Error(), "task": task},
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternal(
			"task_lease_takeover_failed",
			"failed to read task lease takeover result",
			map[string]any{"error": err.Error(), "task": task},
		)
	}
	if affected == 0 {
		s.logf("task lease denied task=%s holder=%s", task, holder)
		return false, nil
	}

	s.logf("task lease taken over task=%s holder=%s", task, holder)
	return true, nil
}

func (s *Store) Release(ctx context.Context, task string, holder string) *apperrors.AppError {
	const query = `
DELETE FROM app.task_leases
WHERE task = $1 AND holder = $2
`

	if _, err := s.db.ExecContext(ctx, query, task, holder); err != nil {
		return apperrors.NewInternal(
			"task_lease_release_failed",
			"failed to release task lease",
			map[string]any{"error": err.Error(), "task": task},
		)
	}

	s.logf("task lease released task=%s holder=%s", task, holder)
	return nil
}

func (s *Store) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
