// Package db provides SQLite storage for calculation history and metadata.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Calculation history table
-- One row per add/subtract request, successful or not
CREATE TABLE IF NOT EXISTS calculation_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    operation TEXT NOT NULL,           -- 'add' or 'subtract'
    left_operand TEXT NOT NULL,        -- augend or minuend as entered
    right_operand TEXT NOT NULL,       -- addend or subtrahend as entered
    result TEXT NOT NULL DEFAULT '',   -- minimal numeral, empty on failure
    error_kind TEXT NOT NULL DEFAULT '', -- 'invalid_symbol', 'numeral_too_large', 'underflow'
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_calculation_history_operation
    ON calculation_history(operation);

CREATE INDEX IF NOT EXISTS idx_calculation_history_created
    ON calculation_history(created_at);

-- History metadata table
-- Stores key-value metadata such as the last result
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
