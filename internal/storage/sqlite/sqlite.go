// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGathering persists a new gathering to the database.
func (s *SQLiteStore) CreateGathering(ctx context.Context, gathering *models.Gathering) error {
	if gathering.ID == "" {
		gathering.ID = uuid.New().String()
	}
	if gathering.Status == "" {
		gathering.Status = models.GatheringOpen
	}
	if gathering.CreatedAt == 0 {
		gathering.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO gatherings (id, name, status, created_at) VALUES (?, ?, ?, ?)",
		gathering.ID, gathering.Name, string(gathering.Status), gathering.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gathering: %w", err)
	}
	return nil
}

// GetGathering retrieves a gathering by ID, including participants,
// expenses (with shares), and payments.
func (s *SQLiteStore) GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	gathering := &models.Gathering{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, status, created_at FROM gatherings WHERE id = ?",
		gatheringID,
	).Scan(&gathering.ID, &gathering.Name, &status, &gathering.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: gathering %s", storage.ErrNotFound, gatheringID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gathering: %w", err)
	}
	gathering.Status = models.GatheringStatus(status)

	if gathering.Participants, err = s.ListParticipants(ctx, gatheringID); err != nil {
		return nil, err
	}
	if gathering.Expenses, err = s.ListExpenses(ctx, gatheringID); err != nil {
		return nil, err
	}
	if gathering.Payments, err = s.ListPayments(ctx, gatheringID); err != nil {
		return nil, err
	}

	return gathering, nil
}

// ListGatherings retrieves all gathering headers ordered by creation.
func (s *SQLiteStore) ListGatherings(ctx context.Context) ([]*models.Gathering, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, status, created_at FROM gatherings ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list gatherings: %w", err)
	}
	defer rows.Close()

	var gatherings []*models.Gathering
	for rows.Next() {
		gathering := &models.Gathering{}
		var status string
		if err := rows.Scan(&gathering.ID, &gathering.Name, &status, &gathering.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gathering: %w", err)
		}
		gathering.Status = models.GatheringStatus(status)
		gatherings = append(gatherings, gathering)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gatherings: %w", err)
	}

	return gatherings, nil
}

// UpdateGatheringStatus sets the lifecycle status of a gathering.
func (s *SQLiteStore) UpdateGatheringStatus(ctx context.Context, gatheringID string, status models.GatheringStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE gatherings SET status = ? WHERE id = ?",
		string(status), gatheringID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gathering status: %w", err)
	}
	return checkAffected(result, "gathering", gatheringID)
}

// DeleteGathering removes a gathering; foreign keys cascade the delete
// to participants, expenses, shares, and payments.
func (s *SQLiteStore) DeleteGathering(ctx context.Context, gatheringID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM gatherings WHERE id = ?", gatheringID)
	if err != nil {
		return fmt.Errorf("failed to delete gathering: %w", err)
	}
	return checkAffected(result, "gathering", gatheringID)
}

// checkAffected turns a zero-row mutation into ErrNotFound.
func checkAffected(result sql.Result, kind, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}
