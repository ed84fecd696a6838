// Package calculator derives balances and settlement plans from a
// gathering's recorded expenses and payments. Everything here is a pure
// function over integer cents; results are deterministic for identical
// input order.
package calculator

import (
	"fmt"

	"github.com/mmynk/gatherings/internal/models"
)

// SplitEqually apportions amountCents evenly across the given
// participants. The remainder is allocated one cent at a time to the
// first participants in list order, so the shares always sum to
// amountCents exactly: 1001 split three ways yields 334, 334, 333.
func SplitEqually(amountCents int64, participantIDs []string) ([]models.Share, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", amountCents)
	}
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	n := int64(len(participantIDs))
	base := amountCents / n
	remainder := amountCents % n

	shares := make([]models.Share, len(participantIDs))
	for i, id := range participantIDs {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares[i] = models.Share{ParticipantID: id, AmountCents: cents}
	}
	return shares, nil
}
