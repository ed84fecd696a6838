package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/gatherings/internal/models"
)

// AddPayment persists a member-to-member payment to the database.
func (s *SQLiteStore) AddPayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var note interface{} = nil
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (id, gathering_id, from_id, to_id, amount_cents, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		payment.ID, payment.GatheringID, payment.FromID, payment.ToID, payment.AmountCents, note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPayments retrieves a gathering's payments in insertion order.
func (s *SQLiteStore) ListPayments(ctx context.Context, gatheringID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, gathering_id, from_id, to_id, amount_cents, note, created_at FROM payments WHERE gathering_id = ? ORDER BY rowid",
		gatheringID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var note sql.NullString
		if err := rows.Scan(&p.ID, &p.GatheringID, &p.FromID, &p.ToID, &p.AmountCents, &note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if note.Valid {
			p.Note = note.String
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
