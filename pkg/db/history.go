package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MetadataLastResult holds the most recent successful result.
const MetadataLastResult = "last_result"

// CalculationRecord represents a calculation history record.
type CalculationRecord struct {
	ID        int64
	Operation string
	Left      string
	Right     string
	Result    string
	ErrorKind string
	CreatedAt time.Time
}

// Failed reports whether the calculation produced no numeral.
func (r CalculationRecord) Failed() bool {
	return r.ErrorKind != ""
}

// History manages calculation history operations.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// Record stores a calculation and returns its ID. A successful record also
// becomes the last result.
func (h *History) Record(ctx context.Context, record CalculationRecord) (int64, error) {
	var id int64

	err := h.conn.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO calculation_history (operation, left_operand, right_operand, result, error_kind)
			VALUES (?, ?, ?, ?, ?)
		`,
			record.Operation,
			record.Left,
			record.Right,
			record.Result,
			record.ErrorKind,
		)
		if err != nil {
			return err
		}

		id, err = result.LastInsertId()
		if err != nil {
			return err
		}

		if record.Failed() {
			return nil
		}

		return setMetadata(ctx, tx, MetadataLastResult, record.Result)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record calculation: %w", err)
	}

	return id, nil
}

// Recent retrieves the newest records first. A non-positive limit returns all.
func (h *History) Recent(ctx context.Context, limit int) ([]CalculationRecord, error) {
	query := `
		SELECT id, operation, left_operand, right_operand, result, error_kind, created_at
		FROM calculation_history
		ORDER BY id DESC
		LIMIT ?
	`

	records, err := h.query(ctx, query, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent calculations: %w", err)
	}
	return records, nil
}

// ByOperation retrieves the newest records for one operation.
func (h *History) ByOperation(ctx context.Context, operation string, limit int) ([]CalculationRecord, error) {
	query := `
		SELECT id, operation, left_operand, right_operand, result, error_kind, created_at
		FROM calculation_history
		WHERE operation = ?
		ORDER BY id DESC
		LIMIT ?
	`

	records, err := h.query(ctx, query, operation, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get calculations by operation: %w", err)
	}
	return records, nil
}

// Clear deletes all history, forgets the last result and returns the number
// of records removed.
func (h *History) Clear(ctx context.Context) (int64, error) {
	result, err := h.conn.ExecContext(ctx, `DELETE FROM calculation_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := h.SetMetadata(ctx, MetadataLastResult, ""); err != nil {
		return rows, err
	}

	return rows, nil
}

func (h *History) query(ctx context.Context, query string, args ...any) ([]CalculationRecord, error) {
	rows, err := h.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CalculationRecord
	for rows.Next() {
		var record CalculationRecord
		if err := rows.Scan(
			&record.ID,
			&record.Operation,
			&record.Left,
			&record.Right,
			&record.Result,
			&record.ErrorKind,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// Stats represents history statistics.
type Stats struct {
	TotalAdds       int
	TotalSubtracts  int
	TotalFailures   int
	LastCalculation sql.NullString
}

// Total returns the number of recorded calculations.
func (s Stats) Total() int {
	return s.TotalAdds + s.TotalSubtracts
}

// GetStats retrieves history statistics.
func (h *History) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculation_history WHERE operation = 'add'`).Scan(&stats.TotalAdds)
	if err != nil {
		return nil, fmt.Errorf("failed to get add count: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculation_history WHERE operation = 'subtract'`).Scan(&stats.TotalSubtracts)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtract count: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculation_history WHERE error_kind != ''`).Scan(&stats.TotalFailures)
	if err != nil {
		return nil, fmt.Errorf("failed to get failure count: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT MAX(created_at) FROM calculation_history`).Scan(&stats.LastCalculation)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last calculation time: %w", err)
	}

	return &stats, nil
}

const upsertMetadata = `
	INSERT INTO history_metadata (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
`

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := h.conn.QueryRowContext(ctx, `SELECT value FROM history_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(ctx context.Context, key, value string) error {
	if err := setMetadata(ctx, h.conn, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}

// execer is satisfied by both *Connection and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setMetadata(ctx context.Context, ex execer, key, value string) error {
	_, err := ex.ExecContext(ctx, upsertMetadata, key, value)
	return err
}
