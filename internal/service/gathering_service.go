// Package service implements the gathering engine: the only entry point
// permitted to mutate persisted state. Every operation validates its
// input fully before touching the store, so a failure never leaves a
// partial write behind. Balances and settlement plans are recomputed
// from persisted state on every query and never cached.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// NamePolicy decides whether participant names must be unique within a
// gathering.
type NamePolicy string

const (
	// NamePolicyUnique rejects duplicate participant names.
	NamePolicyUnique NamePolicy = "unique"
	// NamePolicyAllow permits duplicate participant names.
	NamePolicyAllow NamePolicy = "allow"
)

// GatheringService orchestrates validation, persistence, and derivation
// for gatherings.
type GatheringService struct {
	store  storage.Store
	policy NamePolicy
}

// New creates a GatheringService with the given storage backend and
// participant name policy.
func New(store storage.Store, policy NamePolicy) *GatheringService {
	if policy == "" {
		policy = NamePolicyUnique
	}
	return &GatheringService{store: store, policy: policy}
}

// CreateGathering creates a new open gathering with no participants.
func (s *GatheringService) CreateGathering(ctx context.Context, name string) (*models.Gathering, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: gathering name is required", ErrInvalidName)
	}

	gathering := &models.Gathering{Name: name}
	if err := s.store.CreateGathering(ctx, gathering); err != nil {
		return nil, err
	}

	slog.Info("Gathering created", "gathering_id", gathering.ID, "name", name)
	return gathering, nil
}

// GetGathering retrieves a gathering with all its collections.
func (s *GatheringService) GetGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	return s.store.GetGathering(ctx, gatheringID)
}

// ListGatherings retrieves every gathering header.
func (s *GatheringService) ListGatherings(ctx context.Context) ([]*models.Gathering, error) {
	return s.store.ListGatherings(ctx)
}

// CloseGathering marks a gathering closed. Closed gatherings reject all
// further mutations but remain readable and settleable.
func (s *GatheringService) CloseGathering(ctx context.Context, gatheringID string) (*models.Gathering, error) {
	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if gathering.Status == models.GatheringClosed {
		return nil, fmt.Errorf("%w: %s is already closed", ErrGatheringClosed, gatheringID)
	}

	if err := s.store.UpdateGatheringStatus(ctx, gatheringID, models.GatheringClosed); err != nil {
		return nil, err
	}
	gathering.Status = models.GatheringClosed

	slog.Info("Gathering closed", "gathering_id", gatheringID)
	return gathering, nil
}

// DeleteGathering removes a gathering and everything it owns. Deleting a
// closed gathering requires force.
func (s *GatheringService) DeleteGathering(ctx context.Context, gatheringID string, force bool) error {
	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return err
	}
	if gathering.Status == models.GatheringClosed && !force {
		return fmt.Errorf("%w: deleting closed gathering %s requires force", ErrGatheringClosed, gatheringID)
	}

	if err := s.store.DeleteGathering(ctx, gatheringID); err != nil {
		return err
	}

	slog.Info("Gathering deleted", "gathering_id", gatheringID, "force", force)
	return nil
}

// AddParticipant adds a new member to an open gathering. Under the
// unique-name policy a taken name fails with ErrDuplicateName.
func (s *GatheringService) AddParticipant(ctx context.Context, gatheringID, name string) (*models.Participant, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidName)
	}

	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if gathering.Status == models.GatheringClosed {
		return nil, fmt.Errorf("%w: cannot add participant to %s", ErrGatheringClosed, gatheringID)
	}
	if err := s.checkName(gathering.Participants, name); err != nil {
		return nil, err
	}

	participant := &models.Participant{GatheringID: gatheringID, Name: name}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		return nil, err
	}

	slog.Info("Participant added", "gathering_id", gatheringID, "participant_id", participant.ID, "name", name)
	return participant, nil
}

// RenameParticipant corrects a participant's display name.
func (s *GatheringService) RenameParticipant(ctx context.Context, gatheringID, participantID, newName string) (*models.Participant, error) {
	if newName == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidName)
	}

	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if gathering.Status == models.GatheringClosed {
		return nil, fmt.Errorf("%w: cannot rename participant in %s", ErrGatheringClosed, gatheringID)
	}

	participant := findParticipant(gathering.Participants, participantID)
	if participant == nil {
		return nil, fmt.Errorf("%w: participant %s", storage.ErrNotFound, participantID)
	}
	if err := s.checkName(gathering.Participants, newName); err != nil {
		return nil, err
	}

	if err := s.store.UpdateParticipantName(ctx, gatheringID, participantID, newName); err != nil {
		return nil, err
	}
	participant.Name = newName

	slog.Info("Participant renamed", "gathering_id", gatheringID, "participant_id", participantID, "name", newName)
	return participant, nil
}

// RemoveParticipant removes a member who has no recorded expenses,
// shares, or payments.
func (s *GatheringService) RemoveParticipant(ctx context.Context, gatheringID, participantID string) error {
	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return err
	}
	if gathering.Status == models.GatheringClosed {
		return fmt.Errorf("%w: cannot remove participant from %s", ErrGatheringClosed, gatheringID)
	}
	if findParticipant(gathering.Participants, participantID) == nil {
		return fmt.Errorf("%w: participant %s", storage.ErrNotFound, participantID)
	}

	for _, e := range gathering.Expenses {
		if e.PayerID == participantID {
			return fmt.Errorf("%w: participant %s paid expense %s", ErrHasActivity, participantID, e.ID)
		}
		for _, share := range e.Shares {
			if share.ParticipantID == participantID {
				return fmt.Errorf("%w: participant %s owes a share of expense %s", ErrHasActivity, participantID, e.ID)
			}
		}
	}
	for _, p := range gathering.Payments {
		if p.FromID == participantID || p.ToID == participantID {
			return fmt.Errorf("%w: participant %s appears in payment %s", ErrHasActivity, participantID, p.ID)
		}
	}

	if err := s.store.DeleteParticipant(ctx, gatheringID, participantID); err != nil {
		return err
	}

	slog.Info("Participant removed", "gathering_id", gatheringID, "participant_id", participantID)
	return nil
}

// AddExpense records an expense paid by one participant. A nil share
// list splits the amount equally among all current participants, with
// the remainder allocated one cent at a time in participant order.
// Explicit shares must reference members only and sum to the amount
// exactly.
func (s *GatheringService) AddExpense(ctx context.Context, gatheringID, payerID string, amountCents int64, description string, shares []models.Share) (*models.Expense, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: expense amount must be positive, got %d cents", ErrInvalidAmount, amountCents)
	}

	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if gathering.Status == models.GatheringClosed {
		return nil, fmt.Errorf("%w: cannot add expense to %s", ErrGatheringClosed, gatheringID)
	}

	members := make(map[string]bool, len(gathering.Participants))
	for _, p := range gathering.Participants {
		members[p.ID] = true
	}
	if !members[payerID] {
		return nil, fmt.Errorf("%w: payer %s is not a member of gathering %s", ErrInvalidShare, payerID, gatheringID)
	}

	if shares == nil {
		ids := make([]string, len(gathering.Participants))
		for i, p := range gathering.Participants {
			ids[i] = p.ID
		}
		if shares, err = calculator.SplitEqually(amountCents, ids); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	} else {
		var sum int64
		seen := make(map[string]bool, len(shares))
		for _, share := range shares {
			if !members[share.ParticipantID] {
				return nil, fmt.Errorf("%w: %s is not a member of gathering %s", ErrInvalidShare, share.ParticipantID, gatheringID)
			}
			if seen[share.ParticipantID] {
				return nil, fmt.Errorf("%w: %s appears twice in the share list", ErrInvalidShare, share.ParticipantID)
			}
			seen[share.ParticipantID] = true
			if share.AmountCents < 0 {
				return nil, fmt.Errorf("%w: share for %s is negative", ErrInvalidAmount, share.ParticipantID)
			}
			sum += share.AmountCents
		}
		if sum != amountCents {
			return nil, fmt.Errorf("%w: shares sum to %d cents, amount is %d", ErrInvalidAmount, sum, amountCents)
		}
	}

	expense := &models.Expense{
		GatheringID: gatheringID,
		PayerID:     payerID,
		AmountCents: amountCents,
		Description: description,
		Shares:      shares,
	}
	if err := s.store.AddExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense added",
		"gathering_id", gatheringID,
		"expense_id", expense.ID,
		"payer_id", payerID,
		"amount_cents", amountCents,
		"shares", len(shares),
	)
	return expense, nil
}

// RecordPayment records a direct transfer between two members. The
// sender's net balance improves by the amount, the receiver's decreases.
func (s *GatheringService) RecordPayment(ctx context.Context, gatheringID, fromID, toID string, amountCents int64, note string) (*models.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %d cents", ErrInvalidAmount, amountCents)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: payment from a participant to themself", ErrInvalidShare)
	}

	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	if gathering.Status == models.GatheringClosed {
		return nil, fmt.Errorf("%w: cannot record payment in %s", ErrGatheringClosed, gatheringID)
	}
	for _, id := range []string{fromID, toID} {
		if findParticipant(gathering.Participants, id) == nil {
			return nil, fmt.Errorf("%w: %s is not a member of gathering %s", ErrInvalidShare, id, gatheringID)
		}
	}

	payment := &models.Payment{
		GatheringID: gatheringID,
		FromID:      fromID,
		ToID:        toID,
		AmountCents: amountCents,
		Note:        note,
	}
	if err := s.store.AddPayment(ctx, payment); err != nil {
		return nil, err
	}

	slog.Info("Payment recorded",
		"gathering_id", gatheringID,
		"payment_id", payment.ID,
		"from_id", fromID,
		"to_id", toID,
		"amount_cents", amountCents,
	)
	return payment, nil
}

// Balances computes every participant's net position, fresh from
// persisted state.
func (s *GatheringService) Balances(ctx context.Context, gatheringID string) ([]models.MemberBalance, error) {
	gathering, err := s.store.GetGathering(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(gathering.Participants, gathering.Expenses, gathering.Payments)
}

// Settlement derives the transfer plan that zeroes all balances, fresh
// from persisted state.
func (s *GatheringService) Settlement(ctx context.Context, gatheringID string) ([]models.Transfer, error) {
	balances, err := s.Balances(ctx, gatheringID)
	if err != nil {
		return nil, err
	}
	return calculator.PlanSettlement(balances)
}

func (s *GatheringService) checkName(participants []models.Participant, name string) error {
	if s.policy != NamePolicyUnique {
		return nil
	}
	for _, p := range participants {
		if p.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	return nil
}

func findParticipant(participants []models.Participant, id string) *models.Participant {
	for i := range participants {
		if participants[i].ID == id {
			return &participants[i]
		}
	}
	return nil
}
