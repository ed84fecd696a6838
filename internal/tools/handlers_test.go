package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/gatherings/internal/service"
	"github.com/mmynk/gatherings/internal/storage"
	"github.com/mmynk/gatherings/internal/storage/sqlite"
)

func newTestService(t *testing.T) *service.GatheringService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gatherings-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return service.New(store, service.NamePolicyUnique)
}

// TestToolFlow drives a full gathering through the tool handlers the
// way an MCP client would: create, add people, record an expense and a
// payment, then read balances and the settlement plan.
func TestToolFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, created, err := CreateGatheringHandler(svc)(ctx, nil, CreateGatheringInput{Name: "Ski Trip"})
	if err != nil {
		t.Fatalf("create_gathering failed: %v", err)
	}
	gatheringID := created.Gathering.ID
	if created.Gathering.Status != "open" {
		t.Errorf("Status = %s, want open", created.Gathering.Status)
	}

	addParticipant := AddParticipantHandler(svc)
	var ids []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, result, err := addParticipant(ctx, nil, AddParticipantInput{GatheringID: gatheringID, Name: name})
		if err != nil {
			t.Fatalf("add_participant(%s) failed: %v", name, err)
		}
		ids = append(ids, result.Participant.ID)
	}

	_, expense, err := AddExpenseHandler(svc)(ctx, nil, AddExpenseInput{
		GatheringID: gatheringID,
		PayerID:     ids[0],
		Amount:      "30.00",
		Description: "cabin",
	})
	if err != nil {
		t.Fatalf("add_expense failed: %v", err)
	}
	if expense.Expense.Amount != "30.00" {
		t.Errorf("Amount = %s, want 30.00", expense.Expense.Amount)
	}
	for _, share := range expense.Expense.Shares {
		if share.Amount != "10.00" {
			t.Errorf("share = %s, want 10.00", share.Amount)
		}
	}

	_, _, err = RecordPaymentHandler(svc)(ctx, nil, RecordPaymentInput{
		GatheringID: gatheringID,
		FromID:      ids[1],
		ToID:        ids[0],
		Amount:      "10.00",
		Note:        "venmo",
	})
	if err != nil {
		t.Fatalf("record_payment failed: %v", err)
	}

	_, balances, err := GetBalancesHandler(svc)(ctx, nil, GetBalancesInput{GatheringID: gatheringID})
	if err != nil {
		t.Fatalf("get_balances failed: %v", err)
	}
	wantNet := map[string]string{ids[0]: "10.00", ids[1]: "0.00", ids[2]: "-10.00"}
	for _, b := range balances.Balances {
		if b.Net != wantNet[b.ParticipantID] {
			t.Errorf("Net for %s = %s, want %s", b.Name, b.Net, wantNet[b.ParticipantID])
		}
	}

	_, settlement, err := GetSettlementHandler(svc)(ctx, nil, GetSettlementInput{GatheringID: gatheringID})
	if err != nil {
		t.Fatalf("get_settlement failed: %v", err)
	}
	if len(settlement.Transfers) != 1 {
		t.Fatalf("len(Transfers) = %d, want 1", len(settlement.Transfers))
	}
	tr := settlement.Transfers[0]
	if tr.FromID != ids[2] || tr.ToID != ids[0] || tr.Amount != "10.00" {
		t.Errorf("transfer = %s -> %s %s, want Carol -> Alice 10.00", tr.FromName, tr.ToName, tr.Amount)
	}

	_, shown, err := ShowGatheringHandler(svc)(ctx, nil, ShowGatheringInput{GatheringID: gatheringID})
	if err != nil {
		t.Fatalf("show_gathering failed: %v", err)
	}
	if shown.TotalExpenses != "30.00" {
		t.Errorf("TotalExpenses = %s, want 30.00", shown.TotalExpenses)
	}
	if len(shown.Participants) != 3 || len(shown.Expenses) != 1 || len(shown.Payments) != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1",
			len(shown.Participants), len(shown.Expenses), len(shown.Payments))
	}
}

func TestToolErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("show unknown gathering", func(t *testing.T) {
		_, _, err := ShowGatheringHandler(svc)(ctx, nil, ShowGatheringInput{GatheringID: "no-such-id"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("malformed amount", func(t *testing.T) {
		_, created, err := CreateGatheringHandler(svc)(ctx, nil, CreateGatheringInput{Name: "Dinner"})
		if err != nil {
			t.Fatalf("create_gathering failed: %v", err)
		}
		_, participant, err := AddParticipantHandler(svc)(ctx, nil, AddParticipantInput{
			GatheringID: created.Gathering.ID,
			Name:        "Alice",
		})
		if err != nil {
			t.Fatalf("add_participant failed: %v", err)
		}

		_, _, err = AddExpenseHandler(svc)(ctx, nil, AddExpenseInput{
			GatheringID: created.Gathering.ID,
			PayerID:     participant.Participant.ID,
			Amount:      "12.345",
		})
		if err == nil {
			t.Error("expected error for sub-cent amount")
		}
	})

	t.Run("explicit shares round trip", func(t *testing.T) {
		_, created, err := CreateGatheringHandler(svc)(ctx, nil, CreateGatheringInput{Name: "Taxi"})
		if err != nil {
			t.Fatalf("create_gathering failed: %v", err)
		}
		gatheringID := created.Gathering.ID

		var ids []string
		for _, name := range []string{"Dana", "Eve"} {
			_, result, err := AddParticipantHandler(svc)(ctx, nil, AddParticipantInput{GatheringID: gatheringID, Name: name})
			if err != nil {
				t.Fatalf("add_participant failed: %v", err)
			}
			ids = append(ids, result.Participant.ID)
		}

		_, expense, err := AddExpenseHandler(svc)(ctx, nil, AddExpenseInput{
			GatheringID: gatheringID,
			PayerID:     ids[0],
			Amount:      "25.50",
			Shares: []ShareInput{
				{ParticipantID: ids[0], Amount: "20.00"},
				{ParticipantID: ids[1], Amount: "5.50"},
			},
		})
		if err != nil {
			t.Fatalf("add_expense failed: %v", err)
		}
		if got := expense.Expense.Shares[1].Amount; got != "5.50" {
			t.Errorf("share = %s, want 5.50", got)
		}
	})

	t.Run("delete requires force once closed", func(t *testing.T) {
		_, created, err := CreateGatheringHandler(svc)(ctx, nil, CreateGatheringInput{Name: "Brunch"})
		if err != nil {
			t.Fatalf("create_gathering failed: %v", err)
		}
		gatheringID := created.Gathering.ID

		_, closed, err := CloseGatheringHandler(svc)(ctx, nil, CloseGatheringInput{GatheringID: gatheringID})
		if err != nil {
			t.Fatalf("close_gathering failed: %v", err)
		}
		if closed.Gathering.Status != "closed" {
			t.Errorf("Status = %s, want closed", closed.Gathering.Status)
		}

		_, _, err = DeleteGatheringHandler(svc)(ctx, nil, DeleteGatheringInput{GatheringID: gatheringID})
		if !errors.Is(err, service.ErrGatheringClosed) {
			t.Errorf("err = %v, want ErrGatheringClosed", err)
		}

		_, deleted, err := DeleteGatheringHandler(svc)(ctx, nil, DeleteGatheringInput{GatheringID: gatheringID, Force: true})
		if err != nil {
			t.Fatalf("forced delete_gathering failed: %v", err)
		}
		if !deleted.Deleted {
			t.Error("expected Deleted = true")
		}
	})
}
