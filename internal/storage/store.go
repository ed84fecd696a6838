// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/gatherings/internal/models"
)

// ErrNotFound reports that a referenced gathering or participant does
// not exist. Implementations return it (wrapped) for missing rows so
// callers can distinguish absence from storage faults with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for gathering storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer, and lets tests inject a
// fake. Every mutation is atomic: it either fully commits or leaves the
// store unchanged.
type Store interface {
	// CreateGathering persists a new gathering. The ID, Status, and
	// CreatedAt fields are populated by the store.
	CreateGathering(ctx context.Context, gathering *models.Gathering) error

	// GetGathering retrieves a gathering with its participants,
	// expenses, and payments. Returns ErrNotFound if absent.
	GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error)

	// ListGatherings retrieves every gathering header (no collections),
	// ordered by creation time.
	ListGatherings(ctx context.Context) ([]*models.Gathering, error)

	// UpdateGatheringStatus sets the lifecycle status.
	// Returns ErrNotFound if the gathering is absent.
	UpdateGatheringStatus(ctx context.Context, gatheringID string, status models.GatheringStatus) error

	// DeleteGathering removes a gathering and cascades to its
	// participants, expenses, shares, and payments.
	// Returns ErrNotFound if the gathering is absent.
	DeleteGathering(ctx context.Context, gatheringID string) error

	// AddParticipant persists a new participant. The ID field is
	// populated by the store. Returns ErrNotFound if the gathering is
	// absent.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// UpdateParticipantName renames a participant.
	// Returns ErrNotFound if the participant is absent.
	UpdateParticipantName(ctx context.Context, gatheringID, participantID, name string) error

	// DeleteParticipant removes a participant.
	// Returns ErrNotFound if the participant is absent.
	DeleteParticipant(ctx context.Context, gatheringID, participantID string) error

	// ListParticipants retrieves a gathering's participants in insertion
	// order.
	ListParticipants(ctx context.Context, gatheringID string) ([]models.Participant, error)

	// AddExpense persists an expense together with its shares in one
	// transaction. The ID and CreatedAt fields are populated by the
	// store.
	AddExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves a gathering's expenses, shares included,
	// in insertion order.
	ListExpenses(ctx context.Context, gatheringID string) ([]models.Expense, error)

	// AddPayment persists a member-to-member payment. The ID and
	// CreatedAt fields are populated by the store.
	AddPayment(ctx context.Context, payment *models.Payment) error

	// ListPayments retrieves a gathering's payments in insertion order.
	ListPayments(ctx context.Context, gatheringID string) ([]models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
