package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// AddParticipant persists a new participant to the database.
func (s *SQLiteStore) AddParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}

	// Verify the gathering exists so the caller gets ErrNotFound rather
	// than a bare foreign key violation.
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM gatherings WHERE id = ?", participant.GatheringID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: gathering %s", storage.ErrNotFound, participant.GatheringID)
	}
	if err != nil {
		return fmt.Errorf("failed to check gathering existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO participants (id, gathering_id, name) VALUES (?, ?, ?)",
		participant.ID, participant.GatheringID, participant.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// UpdateParticipantName renames a participant.
func (s *SQLiteStore) UpdateParticipantName(ctx context.Context, gatheringID, participantID, name string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET name = ? WHERE id = ? AND gathering_id = ?",
		name, participantID, gatheringID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename participant: %w", err)
	}
	return checkAffected(result, "participant", participantID)
}

// DeleteParticipant removes a participant from a gathering.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, gatheringID, participantID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM participants WHERE id = ? AND gathering_id = ?",
		participantID, gatheringID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffected(result, "participant", participantID)
}

// ListParticipants retrieves a gathering's participants in insertion
// order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, gatheringID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, gathering_id, name FROM participants WHERE gathering_id = ? ORDER BY rowid",
		gatheringID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.GatheringID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
