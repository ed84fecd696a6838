package calculator

import (
	"container/heap"
	"fmt"

	"github.com/mmynk/gatherings/internal/models"
)

// PlanSettlement produces the list of transfers that zeroes every balance.
//
// Greedy matching: the participant with the largest outstanding credit is
// paired with the participant with the largest outstanding debt, the
// smaller of the two amounts is transferred, and whoever reaches zero
// drops out. Ties on magnitude break by participant id ascending, so the
// output is byte-identical for identical input.
//
// The contract is P−1 transfers at most for P participants and
// O(P log P) time. True minimum-transaction settlement is NP-hard; this
// greedy plan is near-minimal and, unlike an optimal search, predictable
// and auditable.
//
// Balances must sum to zero; anything else is a fatal internal
// consistency fault reported as ErrCorruptState.
func PlanSettlement(balances []models.MemberBalance) ([]models.Transfer, error) {
	var total int64
	creditors := &balanceHeap{}
	debtors := &balanceHeap{}
	for _, b := range balances {
		total += b.NetCents
		switch {
		case b.NetCents > 0:
			creditors.entries = append(creditors.entries, heapEntry{id: b.ParticipantID, cents: b.NetCents})
		case b.NetCents < 0:
			debtors.entries = append(debtors.entries, heapEntry{id: b.ParticipantID, cents: -b.NetCents})
		}
	}
	if total != 0 {
		return nil, fmt.Errorf("%w: balances sum to %d, want 0", ErrCorruptState, total)
	}

	heap.Init(creditors)
	heap.Init(debtors)

	var transfers []models.Transfer
	for creditors.Len() > 0 && debtors.Len() > 0 {
		creditor := heap.Pop(creditors).(heapEntry)
		debtor := heap.Pop(debtors).(heapEntry)

		amount := creditor.cents
		if debtor.cents < amount {
			amount = debtor.cents
		}
		transfers = append(transfers, models.Transfer{
			FromID:      debtor.id,
			ToID:        creditor.id,
			AmountCents: amount,
		})

		if remaining := creditor.cents - amount; remaining > 0 {
			heap.Push(creditors, heapEntry{id: creditor.id, cents: remaining})
		}
		if remaining := debtor.cents - amount; remaining > 0 {
			heap.Push(debtors, heapEntry{id: debtor.id, cents: remaining})
		}
	}

	// Both heaps drain together because the balances sum to zero.
	return transfers, nil
}

type heapEntry struct {
	id    string
	cents int64
}

// balanceHeap is a max-heap on outstanding cents, id ascending on ties.
type balanceHeap struct {
	entries []heapEntry
}

func (h *balanceHeap) Len() int { return len(h.entries) }

func (h *balanceHeap) Less(i, j int) bool {
	if h.entries[i].cents != h.entries[j].cents {
		return h.entries[i].cents > h.entries[j].cents
	}
	return h.entries[i].id < h.entries[j].id
}

func (h *balanceHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *balanceHeap) Push(x any) {
	h.entries = append(h.entries, x.(heapEntry))
}

func (h *balanceHeap) Pop() any {
	last := len(h.entries) - 1
	entry := h.entries[last]
	h.entries = h.entries[:last]
	return entry
}
