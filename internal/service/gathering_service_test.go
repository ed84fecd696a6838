package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
	"github.com/mmynk/gatherings/internal/storage/sqlite"
)

func newTestService(t *testing.T, policy NamePolicy) *GatheringService {
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

	return New(store, policy)
}

// seedGathering creates a gathering with the given participant names
// and returns it with participants in insertion order.
func seedGathering(t *testing.T, svc *GatheringService, names ...string) *models.Gathering {
	t.Helper()
	ctx := context.Background()

	gathering, err := svc.CreateGathering(ctx, "Trip")
	if err != nil {
		t.Fatalf("CreateGathering failed: %v", err)
	}
	for _, name := range names {
		if _, err := svc.AddParticipant(ctx, gathering.ID, name); err != nil {
			t.Fatalf("AddParticipant(%s) failed: %v", name, err)
		}
	}

	gathering, err = svc.GetGathering(ctx, gathering.ID)
	if err != nil {
		t.Fatalf("GetGathering failed: %v", err)
	}
	return gathering
}

func TestCreateGathering(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	t.Run("creates open gathering", func(t *testing.T) {
		gathering, err := svc.CreateGathering(ctx, "Ski Trip")
		if err != nil {
			t.Fatalf("CreateGathering failed: %v", err)
		}
		if gathering.Status != models.GatheringOpen {
			t.Errorf("Status = %s, want open", gathering.Status)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		if _, err := svc.CreateGathering(ctx, ""); !errors.Is(err, ErrInvalidName) {
			t.Errorf("err = %v, want ErrInvalidName", err)
		}
	})
}

func TestAddParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("unique policy rejects duplicate names", func(t *testing.T) {
		svc := newTestService(t, NamePolicyUnique)
		gathering := seedGathering(t, svc, "Alice")

		if _, err := svc.AddParticipant(ctx, gathering.ID, "Alice"); !errors.Is(err, ErrDuplicateName) {
			t.Errorf("err = %v, want ErrDuplicateName", err)
		}
	})

	t.Run("allow policy permits duplicate names", func(t *testing.T) {
		svc := newTestService(t, NamePolicyAllow)
		gathering := seedGathering(t, svc, "Alice")

		if _, err := svc.AddParticipant(ctx, gathering.ID, "Alice"); err != nil {
			t.Fatalf("AddParticipant failed: %v", err)
		}
	})

	t.Run("unknown gathering returns not found", func(t *testing.T) {
		svc := newTestService(t, NamePolicyUnique)
		if _, err := svc.AddParticipant(ctx, "no-such-id", "Alice"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestRemoveParticipant(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	t.Run("removes inactive participant", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		bob := gathering.Participants[1]

		if err := svc.RemoveParticipant(ctx, gathering.ID, bob.ID); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}

		got, err := svc.GetGathering(ctx, gathering.ID)
		if err != nil {
			t.Fatalf("GetGathering failed: %v", err)
		}
		if len(got.Participants) != 1 {
			t.Errorf("len(Participants) = %d, want 1", len(got.Participants))
		}
	})

	t.Run("rejects participant with expense activity", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice := gathering.Participants[0]

		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "lunch", nil); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if err := svc.RemoveParticipant(ctx, gathering.ID, alice.ID); !errors.Is(err, ErrHasActivity) {
			t.Errorf("err = %v, want ErrHasActivity", err)
		}
	})

	t.Run("rejects participant with payment activity", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice, bob := gathering.Participants[0], gathering.Participants[1]

		if _, err := svc.RecordPayment(ctx, gathering.ID, alice.ID, bob.ID, 500, ""); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if err := svc.RemoveParticipant(ctx, gathering.ID, bob.ID); !errors.Is(err, ErrHasActivity) {
			t.Errorf("err = %v, want ErrHasActivity", err)
		}
	})
}

func TestAddExpense(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	t.Run("nil shares split equally with remainder to earliest", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob", "Carol")
		alice := gathering.Participants[0]

		expense, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1001, "groceries", nil)
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		want := []int64{334, 334, 333}
		if len(expense.Shares) != len(want) {
			t.Fatalf("len(Shares) = %d, want %d", len(expense.Shares), len(want))
		}
		for i, cents := range want {
			if expense.Shares[i].AmountCents != cents {
				t.Errorf("Shares[%d] = %d cents, want %d", i, expense.Shares[i].AmountCents, cents)
			}
			if expense.Shares[i].ParticipantID != gathering.Participants[i].ID {
				t.Errorf("Shares[%d] participant = %s, want %s", i, expense.Shares[i].ParticipantID, gathering.Participants[i].ID)
			}
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice")
		alice := gathering.Participants[0]

		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 0, "", nil); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("err = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("rejects non-member payer", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice")

		if _, err := svc.AddExpense(ctx, gathering.ID, "stranger", 1000, "", nil); !errors.Is(err, ErrInvalidShare) {
			t.Errorf("err = %v, want ErrInvalidShare", err)
		}
	})

	t.Run("rejects shares that do not sum to amount", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice, bob := gathering.Participants[0], gathering.Participants[1]

		shares := []models.Share{
			{ParticipantID: alice.ID, AmountCents: 400},
			{ParticipantID: bob.ID, AmountCents: 500},
		}
		_, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "", shares)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("err = %v, want ErrInvalidAmount", err)
		}

		// A rejected expense must leave nothing behind.
		got, err := svc.GetGathering(ctx, gathering.ID)
		if err != nil {
			t.Fatalf("GetGathering failed: %v", err)
		}
		if len(got.Expenses) != 0 {
			t.Errorf("len(Expenses) = %d, want 0", len(got.Expenses))
		}
	})

	t.Run("rejects share referencing a non-member", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice")
		alice := gathering.Participants[0]

		shares := []models.Share{
			{ParticipantID: alice.ID, AmountCents: 500},
			{ParticipantID: "stranger", AmountCents: 500},
		}
		_, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "", shares)
		if !errors.Is(err, ErrInvalidShare) {
			t.Errorf("err = %v, want ErrInvalidShare", err)
		}

		got, err := svc.GetGathering(ctx, gathering.ID)
		if err != nil {
			t.Fatalf("GetGathering failed: %v", err)
		}
		if len(got.Expenses) != 0 {
			t.Errorf("len(Expenses) = %d, want 0", len(got.Expenses))
		}
	})

	t.Run("rejects duplicate participant in share list", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice := gathering.Participants[0]

		shares := []models.Share{
			{ParticipantID: alice.ID, AmountCents: 500},
			{ParticipantID: alice.ID, AmountCents: 500},
		}
		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "", shares); !errors.Is(err, ErrInvalidShare) {
			t.Errorf("err = %v, want ErrInvalidShare", err)
		}
	})
}

func TestRecordPayment(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	t.Run("payment shifts net balances", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice, bob := gathering.Participants[0], gathering.Participants[1]

		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 2000, "dinner", nil); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if _, err := svc.RecordPayment(ctx, gathering.ID, bob.ID, alice.ID, 1000, "paid back"); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		balances, err := svc.Balances(ctx, gathering.ID)
		if err != nil {
			t.Fatalf("Balances failed: %v", err)
		}
		for _, b := range balances {
			if b.NetCents != 0 {
				t.Errorf("Net for %s = %d cents, want 0", b.Name, b.NetCents)
			}
		}
	})

	t.Run("rejects self payment", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice")
		alice := gathering.Participants[0]

		if _, err := svc.RecordPayment(ctx, gathering.ID, alice.ID, alice.ID, 100, ""); !errors.Is(err, ErrInvalidShare) {
			t.Errorf("err = %v, want ErrInvalidShare", err)
		}
	})
}

func TestDeleteGathering(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	t.Run("unknown id returns not found", func(t *testing.T) {
		if err := svc.DeleteGathering(ctx, "no-such-id", false); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("cascades participants and expenses", func(t *testing.T) {
		gathering := seedGathering(t, svc, "Alice", "Bob")
		alice := gathering.Participants[0]
		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "lunch", nil); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if err := svc.DeleteGathering(ctx, gathering.ID, false); err != nil {
			t.Fatalf("DeleteGathering failed: %v", err)
		}
		if _, err := svc.GetGathering(ctx, gathering.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestCloseGathering(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	gathering := seedGathering(t, svc, "Alice", "Bob")
	alice, bob := gathering.Participants[0], gathering.Participants[1]

	if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 1000, "lunch", nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := svc.CloseGathering(ctx, gathering.ID); err != nil {
		t.Fatalf("CloseGathering failed: %v", err)
	}

	t.Run("closing twice fails", func(t *testing.T) {
		if _, err := svc.CloseGathering(ctx, gathering.ID); !errors.Is(err, ErrGatheringClosed) {
			t.Errorf("err = %v, want ErrGatheringClosed", err)
		}
	})

	t.Run("mutations rejected once closed", func(t *testing.T) {
		if _, err := svc.AddParticipant(ctx, gathering.ID, "Carol"); !errors.Is(err, ErrGatheringClosed) {
			t.Errorf("AddParticipant err = %v, want ErrGatheringClosed", err)
		}
		if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 500, "", nil); !errors.Is(err, ErrGatheringClosed) {
			t.Errorf("AddExpense err = %v, want ErrGatheringClosed", err)
		}
		if _, err := svc.RecordPayment(ctx, gathering.ID, bob.ID, alice.ID, 500, ""); !errors.Is(err, ErrGatheringClosed) {
			t.Errorf("RecordPayment err = %v, want ErrGatheringClosed", err)
		}
	})

	t.Run("queries still work once closed", func(t *testing.T) {
		balances, err := svc.Balances(ctx, gathering.ID)
		if err != nil {
			t.Fatalf("Balances failed: %v", err)
		}
		if len(balances) != 2 {
			t.Errorf("len(balances) = %d, want 2", len(balances))
		}
		if _, err := svc.Settlement(ctx, gathering.ID); err != nil {
			t.Fatalf("Settlement failed: %v", err)
		}
	})

	t.Run("delete requires force", func(t *testing.T) {
		if err := svc.DeleteGathering(ctx, gathering.ID, false); !errors.Is(err, ErrGatheringClosed) {
			t.Errorf("err = %v, want ErrGatheringClosed", err)
		}
		if err := svc.DeleteGathering(ctx, gathering.ID, true); err != nil {
			t.Fatalf("forced DeleteGathering failed: %v", err)
		}
		if _, err := svc.GetGathering(ctx, gathering.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestSettlement(t *testing.T) {
	svc := newTestService(t, NamePolicyUnique)
	ctx := context.Background()

	gathering := seedGathering(t, svc, "Alice", "Bob", "Carol")
	alice := gathering.Participants[0]

	if _, err := svc.AddExpense(ctx, gathering.ID, alice.ID, 3000, "cabin", nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	transfers, err := svc.Settlement(ctx, gathering.ID)
	if err != nil {
		t.Fatalf("Settlement failed: %v", err)
	}

	if len(transfers) != 2 {
		t.Fatalf("len(transfers) = %d, want 2", len(transfers))
	}
	for _, tr := range transfers {
		if tr.ToID != alice.ID {
			t.Errorf("transfer to %s, want %s", tr.ToID, alice.ID)
		}
		if tr.AmountCents != 1000 {
			t.Errorf("transfer amount = %d cents, want 1000", tr.AmountCents)
		}
	}
}
