package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/gatherings/internal/models"
)

// AddExpense persists an expense and its shares in one transaction, so
// readers never observe an expense without its share list.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, gathering_id, payer_id, amount_cents, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GatheringID, expense.PayerID, expense.AmountCents, expense.Description, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, participant_id, amount_cents, position) VALUES (?, ?, ?, ?)",
			expense.ID, share.ParticipantID, share.AmountCents, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses retrieves a gathering's expenses with their shares, in
// insertion order.
func (s *SQLiteStore) ListExpenses(ctx context.Context, gatheringID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, gathering_id, payer_id, amount_cents, description, created_at FROM expenses WHERE gathering_id = ? ORDER BY rowid",
		gatheringID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.GatheringID, &e.PayerID, &e.AmountCents, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Shares are loaded per expense, ordered by position so remainder
	// allocation stays reproducible.
	for i := range expenses {
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id, amount_cents FROM expense_shares WHERE expense_id = ? ORDER BY position",
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list expense shares: %w", err)
		}

		for shareRows.Next() {
			var share models.Share
			if err := shareRows.Scan(&share.ParticipantID, &share.AmountCents); err != nil {
				shareRows.Close()
				return nil, fmt.Errorf("failed to scan expense share: %w", err)
			}
			expenses[i].Shares = append(expenses[i].Shares, share)
		}
		if err := shareRows.Err(); err != nil {
			shareRows.Close()
			return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
		}
		shareRows.Close()
	}

	return expenses, nil
}
