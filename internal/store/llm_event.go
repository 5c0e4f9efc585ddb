package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a trace row does not exist.
var ErrNotFound = errors.New("not found")

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const llmColumns = `id, sequence, timestamp_ms, provider, model, purpose, session_id,
	input_tokens, output_tokens, latency_ms, success, error_message, request_body`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_requests
		(sequence, timestamp_ms, provider, model, purpose, session_id, input_tokens,
		 output_tokens, latency_ms, success, error_message, request_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		time.Now().UnixMilli(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.SessionID,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
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
		where = append(where, "timestamp_ms >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp_ms <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.Session != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.Session)
	}

	query := "SELECT " + llmColumns + " FROM llm_requests"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+llmColumns+" FROM llm_requests WHERE id = ?", id)
	rec, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("LLM event %d: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageSummary, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]UsageSummary, error) {
	return r.usageBy(ctx, "model")
}

// usageBy groups the trace by column, which must be a trusted identifier.
func (r *eventRepo) usageBy(ctx context.Context, column string) ([]UsageSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+column+`,
			COUNT(*),
			SUM(CASE WHEN success THEN 0 ELSE 1 END),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_requests
		GROUP BY `+column+`
		ORDER BY COUNT(*) DESC, `+column)
	if err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []UsageSummary
	for rows.Next() {
		var u UsageSummary
		if err := rows.Scan(&u.Key, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM llm_requests WHERE sequence NOT IN (
		SELECT sequence FROM llm_requests ORDER BY sequence DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune LLM events: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(s scanner) (*LLMRequestEventRecord, error) {
	var (
		rec LLMRequestEventRecord
		ts  int64
	)
	err := s.Scan(
		&rec.ID,
		&rec.Sequence,
		&ts,
		&rec.Provider,
		&rec.Model,
		&rec.Purpose,
		&rec.SessionID,
		&rec.InputTokens,
		&rec.OutputTokens,
		&rec.LatencyMs,
		&rec.Success,
		&rec.ErrorMessage,
		&rec.RequestBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = time.UnixMilli(ts)
	return &rec, nil
}
