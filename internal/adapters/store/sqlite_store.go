package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the ApplicationStore
// interface. Records are stored as JSON documents keyed by user and
// email ID.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS applications (
			user_id TEXT NOT NULL,
			email_id TEXT NOT NULL,
			record TEXT NOT NULL,
			created_at TIMESTAMP,
			updated_at TIMESTAMP,
			PRIMARY KEY (user_id, email_id)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save persists a record for a user. Returns false when a record with
// the same email ID already exists for that user.
func (s *SQLiteStore) Save(ctx context.Context, userID string, record *core.ApplicationRecord) (bool, error) {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	doc, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal record: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO applications (user_id, email_id, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, record.EmailID, string(doc), now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to insert record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// List returns every record stored for a user, oldest first
func (s *SQLiteStore) List(ctx context.Context, userID string) ([]*core.ApplicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record
		FROM applications
		WHERE user_id = ?
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*core.ApplicationRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var record core.ApplicationRecord
		if err := json.Unmarshal([]byte(doc), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Get returns the record with the given email ID
func (s *SQLiteStore) Get(ctx context.Context, userID string, emailID string) (*core.ApplicationRecord, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT record
		FROM applications
		WHERE user_id = ? AND email_id = ?
	`, userID, emailID).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	var record core.ApplicationRecord
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// UpdateStatus changes the status of a stored record
func (s *SQLiteStore) UpdateStatus(ctx context.Context, userID string, emailID string, status string) error {
	record, err := s.Get(ctx, userID, emailID)
	if err != nil {
		return err
	}

	record.Status = status
	record.UpdatedAt = time.Now()

	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE applications
		SET record = ?, updated_at = ?
		WHERE user_id = ? AND email_id = ?
	`, string(doc), record.UpdatedAt.Format(time.RFC3339), userID, emailID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}

// Delete removes a stored record
func (s *SQLiteStore) Delete(ctx context.Context, userID string, emailID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM applications
		WHERE user_id = ? AND email_id = ?
	`, userID, emailID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Stop closes the database connection
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
