package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/gatherings/internal/models"
)

// ErrCorruptState reports persisted data that violates an invariant the
// engine assumes: an expense or payment referencing a participant that is
// not a member of the gathering, or balances that do not sum to zero.
// It is surfaced to the caller rather than auto-repaired.
var ErrCorruptState = errors.New("corrupt gathering state")

// ComputeBalances derives each participant's net position from the
// gathering's expenses and payments.
//
// Every participant starts at zero. For each expense the payer is
// credited the full amount and each share participant is debited their
// share. For each payment the sender is credited and the receiver
// debited. The resulting net amounts sum to zero across the gathering;
// a nonzero sum means the inputs were inconsistent and is reported as
// ErrCorruptState.
//
// Output order follows the participant list, so identical input always
// produces identical output.
func ComputeBalances(participants []models.Participant, expenses []models.Expense, payments []models.Payment) ([]models.MemberBalance, error) {
	index := make(map[string]*models.MemberBalance, len(participants))
	balances := make([]models.MemberBalance, len(participants))
	for i, p := range participants {
		balances[i] = models.MemberBalance{ParticipantID: p.ID, Name: p.Name}
		index[p.ID] = &balances[i]
	}

	for _, e := range expenses {
		payer, ok := index[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: expense %s paid by unknown participant %s", ErrCorruptState, e.ID, e.PayerID)
		}
		payer.PaidCents += e.AmountCents

		var shareSum int64
		for _, s := range e.Shares {
			member, ok := index[s.ParticipantID]
			if !ok {
				return nil, fmt.Errorf("%w: expense %s has share for unknown participant %s", ErrCorruptState, e.ID, s.ParticipantID)
			}
			member.OwedCents += s.AmountCents
			shareSum += s.AmountCents
		}
		if shareSum != e.AmountCents {
			return nil, fmt.Errorf("%w: expense %s shares sum to %d, amount is %d", ErrCorruptState, e.ID, shareSum, e.AmountCents)
		}
	}

	for _, p := range payments {
		from, ok := index[p.FromID]
		if !ok {
			return nil, fmt.Errorf("%w: payment %s from unknown participant %s", ErrCorruptState, p.ID, p.FromID)
		}
		to, ok := index[p.ToID]
		if !ok {
			return nil, fmt.Errorf("%w: payment %s to unknown participant %s", ErrCorruptState, p.ID, p.ToID)
		}
		from.PaidCents += p.AmountCents
		to.OwedCents += p.AmountCents
	}

	var total int64
	for i := range balances {
		balances[i].NetCents = balances[i].PaidCents - balances[i].OwedCents
		total += balances[i].NetCents
	}
	if total != 0 {
		return nil, fmt.Errorf("%w: balances sum to %d, want 0", ErrCorruptState, total)
	}

	return balances, nil
}
