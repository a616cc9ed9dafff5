package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gatekeep/internal/gate"
)

// Run is one stored scene run.
type Run struct {
	ID         int64
	Seed       uint64
	ConfigPath string
	StartedAt  time.Time
	Digest     string
}

// JournalRepository хранит прогоны сцены и события ворот.
type JournalRepository struct {
	db *pgxpool.Pool
}

// NewJournalRepository создаёт новый JournalRepository.
func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

// CreateRun inserts a run and returns its ID.
func (r *JournalRepository) CreateRun(ctx context.Context, seed uint64, configPath string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO scene_runs (seed, config_path) VALUES ($1, $2) RETURNING run_id`,
		int64(seed), configPath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating scene run: %w", err)
	}
	return id, nil
}

// FinishRun stores the journal digest of a completed run.
func (r *JournalRepository) FinishRun(ctx context.Context, runID int64, digest string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE scene_runs SET digest = $1 WHERE run_id = $2`, digest, runID)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", runID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finishing run %d: %w", runID, pgx.ErrNoRows)
	}
	return nil
}

// LoadRun reads run metadata.
func (r *JournalRepository) LoadRun(ctx context.Context, runID int64) (Run, error) {
	var run Run
	var seed int64
	err := r.db.QueryRow(ctx,
		`SELECT run_id, seed, config_path, started_at, digest FROM scene_runs WHERE run_id = $1`, runID,
	).Scan(&run.ID, &seed, &run.ConfigPath, &run.StartedAt, &run.Digest)
	if err != nil {
		return Run{}, fmt.Errorf("loading run %d: %w", runID, err)
	}
	run.Seed = uint64(seed)
	return run, nil
}

// SaveEvents appends events to a run. Sequence numbers continue after the
// events already stored, so batches may arrive in several calls.
func (r *JournalRepository) SaveEvents(ctx context.Context, runID int64, events []gate.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "runID", runID, "error", err)
		}
	}()

	var next int32
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq) + 1, 0) FROM gate_events WHERE run_id = $1`, runID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("reading next seq for run %d: %w", runID, err)
	}

	rows := make([][]any, 0, len(events))
	for i, e := range events {
		rows = append(rows, []any{
			runID, next + int32(i), e.Gate, int64(e.At), int16(e.Kind), int16(e.Motion), e.Target,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"gate_events"},
		[]string{"run_id", "seq", "gate", "at_ns", "kind", "motion", "target"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying %d events for run %d: %w", len(events), runID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing events for run %d: %w", runID, err)
	}
	return nil
}

// LoadEvents returns events of a run in recording order.
func (r *JournalRepository) LoadEvents(ctx context.Context, runID int64) ([]gate.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT gate, at_ns, kind, motion, target FROM gate_events WHERE run_id = $1 ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying events for run %d: %w", runID, err)
	}
	defer rows.Close()

	var events []gate.Event
	for rows.Next() {
		var (
			e      gate.Event
			atNs   int64
			kind   int16
			motion int16
		)
		if err := rows.Scan(&e.Gate, &atNs, &kind, &motion, &e.Target); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		e.At = time.Duration(atNs)
		e.Kind = gate.EventKind(kind)
		e.Motion = gate.MotionKind(motion)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}
	return events, nil
}

// RunSink binds a repository to one run so it can serve as a journal sink.
type RunSink struct {
	Repo  *JournalRepository
	RunID int64
}

// SaveEvents stores events under the bound run.
func (s RunSink) SaveEvents(ctx context.Context, events []gate.Event) error {
	return s.Repo.SaveEvents(ctx, s.RunID, events)
}
