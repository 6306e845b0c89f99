package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo backed by SQL tables and the global sequence counter.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type revealEventRow struct {
	Sequence     int64  `db:"sequence"`
	Timestamp    string `db:"timestamp"`
	SessionID    string `db:"session_id"`
	ProblemTitle string `db:"problem_title"`
	Difficulty   string `db:"difficulty"`
	StepIndex    int    `db:"step_index"`
	Outcome      string `db:"outcome"`
	Remaining    int    `db:"remaining"`
}

func (r *eventRepo) AppendRevealEvent(ctx context.Context, data RevealEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	row := revealEventRow{
		Sequence:     seqNum,
		Timestamp:    formatTimestamp(ts),
		SessionID:    data.SessionID,
		ProblemTitle: data.ProblemTitle,
		Difficulty:   data.Difficulty,
		StepIndex:    data.StepIndex,
		Outcome:      data.Outcome,
		Remaining:    data.Remaining,
	}
	_, err = r.db.NamedExecContext(ctx,
		`INSERT INTO reveal_events
			(sequence, timestamp, session_id, problem_title, difficulty, step_index, outcome, remaining)
		 VALUES
			(:sequence, :timestamp, :session_id, :problem_title, :difficulty, :step_index, :outcome, :remaining)`,
		row,
	)
	if err != nil {
		return fmt.Errorf("save reveal event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRevealEvents(ctx context.Context, opts QueryOpts) ([]RevealEventRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, formatTimestamp(opts.From))
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, formatTimestamp(opts.To))
	}
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}

	query := `SELECT sequence, timestamp, session_id, problem_title, difficulty, step_index, outcome, remaining
		FROM reveal_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var rows []revealEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query reveal events: %w", err)
	}

	records := make([]RevealEventRecord, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp of event %d: %w", row.Sequence, err)
		}
		records[i] = RevealEventRecord{
			Sequence:     row.Sequence,
			Timestamp:    ts,
			SessionID:    row.SessionID,
			ProblemTitle: row.ProblemTitle,
			Difficulty:   row.Difficulty,
			StepIndex:    row.StepIndex,
			Outcome:      row.Outcome,
			Remaining:    row.Remaining,
		}
	}
	return records, nil
}

func (r *eventRepo) ClearHistory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reveal_events`); err != nil {
		return fmt.Errorf("clear reveal events: %w", err)
	}
	return nil
}
