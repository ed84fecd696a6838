package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/money"
	"github.com/mmynk/gatherings/internal/service"
)

// CreateGatheringTool defines the MCP tool schema for gathering creation.
func CreateGatheringTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_gathering",
		Description: "Create a new gathering for tracking shared expenses",
	}
}

// CreateGatheringHandler executes a gathering creation request.
func CreateGatheringHandler(svc *service.GatheringService) mcp.ToolHandlerFor[CreateGatheringInput, CreateGatheringResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateGatheringInput) (*mcp.CallToolResult, CreateGatheringResult, error) {
		gathering, err := svc.CreateGathering(ctx, input.Name)
		if err != nil {
			return nil, CreateGatheringResult{}, fmt.Errorf("create gathering failed: %w", err)
		}
		return nil, CreateGatheringResult{Gathering: gatheringSummary(gathering)}, nil
	}
}

// ListGatheringsTool defines the MCP tool schema for listing gatherings.
func ListGatheringsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_gatherings",
		Description: "List all gatherings",
	}
}

// ListGatheringsHandler executes a gathering listing request.
func ListGatheringsHandler(svc *service.GatheringService) mcp.ToolHandlerFor[ListGatheringsInput, ListGatheringsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListGatheringsInput) (*mcp.CallToolResult, ListGatheringsResult, error) {
		gatherings, err := svc.ListGatherings(ctx)
		if err != nil {
			return nil, ListGatheringsResult{}, fmt.Errorf("list gatherings failed: %w", err)
		}

		result := ListGatheringsResult{Gatherings: make([]GatheringSummary, len(gatherings))}
		for i, g := range gatherings {
			result.Gatherings[i] = gatheringSummary(g)
		}
		return nil, result, nil
	}
}

// ShowGatheringTool defines the MCP tool schema for reading a gathering.
func ShowGatheringTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "show_gathering",
		Description: "Show a gathering with its participants, expenses, and payments",
	}
}

// ShowGatheringHandler executes a gathering detail request.
func ShowGatheringHandler(svc *service.GatheringService) mcp.ToolHandlerFor[ShowGatheringInput, ShowGatheringResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShowGatheringInput) (*mcp.CallToolResult, ShowGatheringResult, error) {
		gathering, err := svc.GetGathering(ctx, input.GatheringID)
		if err != nil {
			return nil, ShowGatheringResult{}, fmt.Errorf("show gathering failed: %w", err)
		}

		result := ShowGatheringResult{
			Gathering:    gatheringSummary(gathering),
			Participants: make([]ParticipantEntry, len(gathering.Participants)),
			Expenses:     make([]ExpenseEntry, len(gathering.Expenses)),
			Payments:     make([]PaymentEntry, len(gathering.Payments)),
		}
		for i, p := range gathering.Participants {
			result.Participants[i] = ParticipantEntry{ID: p.ID, Name: p.Name}
		}
		var total int64
		for i, e := range gathering.Expenses {
			result.Expenses[i] = expenseEntry(e)
			total += e.AmountCents
		}
		for i, p := range gathering.Payments {
			result.Payments[i] = paymentEntry(p)
		}
		result.TotalExpenses = money.FormatCents(total)
		return nil, result, nil
	}
}

// CloseGatheringTool defines the MCP tool schema for closing a gathering.
func CloseGatheringTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "close_gathering",
		Description: "Close a gathering so no further expenses or payments can be recorded",
	}
}

// CloseGatheringHandler executes a gathering close request.
func CloseGatheringHandler(svc *service.GatheringService) mcp.ToolHandlerFor[CloseGatheringInput, CloseGatheringResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CloseGatheringInput) (*mcp.CallToolResult, CloseGatheringResult, error) {
		gathering, err := svc.CloseGathering(ctx, input.GatheringID)
		if err != nil {
			return nil, CloseGatheringResult{}, fmt.Errorf("close gathering failed: %w", err)
		}
		return nil, CloseGatheringResult{Gathering: gatheringSummary(gathering)}, nil
	}
}

// DeleteGatheringTool defines the MCP tool schema for deleting a gathering.
func DeleteGatheringTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_gathering",
		Description: "Delete a gathering and all its participants, expenses, and payments",
	}
}

// DeleteGatheringHandler executes a gathering delete request.
func DeleteGatheringHandler(svc *service.GatheringService) mcp.ToolHandlerFor[DeleteGatheringInput, DeleteGatheringResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteGatheringInput) (*mcp.CallToolResult, DeleteGatheringResult, error) {
		if err := svc.DeleteGathering(ctx, input.GatheringID, input.Force); err != nil {
			return nil, DeleteGatheringResult{}, fmt.Errorf("delete gathering failed: %w", err)
		}
		return nil, DeleteGatheringResult{GatheringID: input.GatheringID, Deleted: true}, nil
	}
}

// AddParticipantTool defines the MCP tool schema for adding a participant.
func AddParticipantTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_participant",
		Description: "Add a participant to a gathering",
	}
}

// AddParticipantHandler executes a participant creation request.
func AddParticipantHandler(svc *service.GatheringService) mcp.ToolHandlerFor[AddParticipantInput, AddParticipantResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddParticipantInput) (*mcp.CallToolResult, AddParticipantResult, error) {
		participant, err := svc.AddParticipant(ctx, input.GatheringID, input.Name)
		if err != nil {
			return nil, AddParticipantResult{}, fmt.Errorf("add participant failed: %w", err)
		}
		return nil, AddParticipantResult{Participant: ParticipantEntry{ID: participant.ID, Name: participant.Name}}, nil
	}
}

// RenameParticipantTool defines the MCP tool schema for renaming a participant.
func RenameParticipantTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rename_participant",
		Description: "Correct a participant's display name",
	}
}

// RenameParticipantHandler executes a participant rename request.
func RenameParticipantHandler(svc *service.GatheringService) mcp.ToolHandlerFor[RenameParticipantInput, RenameParticipantResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenameParticipantInput) (*mcp.CallToolResult, RenameParticipantResult, error) {
		participant, err := svc.RenameParticipant(ctx, input.GatheringID, input.ParticipantID, input.Name)
		if err != nil {
			return nil, RenameParticipantResult{}, fmt.Errorf("rename participant failed: %w", err)
		}
		return nil, RenameParticipantResult{Participant: ParticipantEntry{ID: participant.ID, Name: participant.Name}}, nil
	}
}

// RemoveParticipantTool defines the MCP tool schema for removing a participant.
func RemoveParticipantTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "remove_participant",
		Description: "Remove a participant who has no recorded expenses or payments",
	}
}

// RemoveParticipantHandler executes a participant removal request.
func RemoveParticipantHandler(svc *service.GatheringService) mcp.ToolHandlerFor[RemoveParticipantInput, RemoveParticipantResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RemoveParticipantInput) (*mcp.CallToolResult, RemoveParticipantResult, error) {
		if err := svc.RemoveParticipant(ctx, input.GatheringID, input.ParticipantID); err != nil {
			return nil, RemoveParticipantResult{}, fmt.Errorf("remove participant failed: %w", err)
		}
		return nil, RemoveParticipantResult{ParticipantID: input.ParticipantID, Removed: true}, nil
	}
}

// AddExpenseTool defines the MCP tool schema for recording an expense.
func AddExpenseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_expense",
		Description: "Record an expense paid by one participant, split among participants",
	}
}

// AddExpenseHandler executes an expense creation request.
func AddExpenseHandler(svc *service.GatheringService) mcp.ToolHandlerFor[AddExpenseInput, AddExpenseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddExpenseInput) (*mcp.CallToolResult, AddExpenseResult, error) {
		amountCents, err := money.ParseCents(input.Amount)
		if err != nil {
			return nil, AddExpenseResult{}, fmt.Errorf("add expense failed: %w", err)
		}

		// nil means equal split; an explicit list is converted as-is and
		// validated by the service.
		var shares []models.Share
		if input.Shares != nil {
			shares = make([]models.Share, len(input.Shares))
			for i, share := range input.Shares {
				cents, err := money.ParseCents(share.Amount)
				if err != nil {
					return nil, AddExpenseResult{}, fmt.Errorf("add expense failed: share %d: %w", i, err)
				}
				shares[i] = models.Share{ParticipantID: share.ParticipantID, AmountCents: cents}
			}
		}

		expense, err := svc.AddExpense(ctx, input.GatheringID, input.PayerID, amountCents, input.Description, shares)
		if err != nil {
			return nil, AddExpenseResult{}, fmt.Errorf("add expense failed: %w", err)
		}
		return nil, AddExpenseResult{Expense: expenseEntry(*expense)}, nil
	}
}

// RecordPaymentTool defines the MCP tool schema for recording a payment.
func RecordPaymentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "record_payment",
		Description: "Record a payment made by one participant to another",
	}
}

// RecordPaymentHandler executes a payment creation request.
func RecordPaymentHandler(svc *service.GatheringService) mcp.ToolHandlerFor[RecordPaymentInput, RecordPaymentResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RecordPaymentInput) (*mcp.CallToolResult, RecordPaymentResult, error) {
		amountCents, err := money.ParseCents(input.Amount)
		if err != nil {
			return nil, RecordPaymentResult{}, fmt.Errorf("record payment failed: %w", err)
		}

		payment, err := svc.RecordPayment(ctx, input.GatheringID, input.FromID, input.ToID, amountCents, input.Note)
		if err != nil {
			return nil, RecordPaymentResult{}, fmt.Errorf("record payment failed: %w", err)
		}
		return nil, RecordPaymentResult{Payment: paymentEntry(*payment)}, nil
	}
}

// GetBalancesTool defines the MCP tool schema for the balance query.
func GetBalancesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_balances",
		Description: "Compute each participant's net balance (paid minus owed)",
	}
}

// GetBalancesHandler executes a balance query.
func GetBalancesHandler(svc *service.GatheringService) mcp.ToolHandlerFor[GetBalancesInput, GetBalancesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetBalancesInput) (*mcp.CallToolResult, GetBalancesResult, error) {
		balances, err := svc.Balances(ctx, input.GatheringID)
		if err != nil {
			return nil, GetBalancesResult{}, fmt.Errorf("get balances failed: %w", err)
		}

		result := GetBalancesResult{
			GatheringID: input.GatheringID,
			Balances:    make([]BalanceEntry, len(balances)),
		}
		for i, b := range balances {
			result.Balances[i] = BalanceEntry{
				ParticipantID: b.ParticipantID,
				Name:          b.Name,
				Paid:          money.FormatCents(b.PaidCents),
				Owed:          money.FormatCents(b.OwedCents),
				Net:           money.FormatCents(b.NetCents),
			}
		}
		return nil, result, nil
	}
}

// GetSettlementTool defines the MCP tool schema for the settlement query.
func GetSettlementTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_settlement",
		Description: "Compute the transfers that settle all debts with the fewest payments",
	}
}

// GetSettlementHandler executes a settlement query.
func GetSettlementHandler(svc *service.GatheringService) mcp.ToolHandlerFor[GetSettlementInput, GetSettlementResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetSettlementInput) (*mcp.CallToolResult, GetSettlementResult, error) {
		gathering, err := svc.GetGathering(ctx, input.GatheringID)
		if err != nil {
			return nil, GetSettlementResult{}, fmt.Errorf("get settlement failed: %w", err)
		}
		transfers, err := svc.Settlement(ctx, input.GatheringID)
		if err != nil {
			return nil, GetSettlementResult{}, fmt.Errorf("get settlement failed: %w", err)
		}

		names := make(map[string]string, len(gathering.Participants))
		for _, p := range gathering.Participants {
			names[p.ID] = p.Name
		}

		result := GetSettlementResult{
			GatheringID: input.GatheringID,
			Transfers:   make([]TransferEntry, len(transfers)),
		}
		for i, tr := range transfers {
			result.Transfers[i] = TransferEntry{
				FromID:   tr.FromID,
				FromName: names[tr.FromID],
				ToID:     tr.ToID,
				ToName:   names[tr.ToID],
				Amount:   money.FormatCents(tr.AmountCents),
			}
		}
		return nil, result, nil
	}
}

func gatheringSummary(g *models.Gathering) GatheringSummary {
	return GatheringSummary{
		ID:        g.ID,
		Name:      g.Name,
		Status:    string(g.Status),
		CreatedAt: formatTimestamp(g.CreatedAt),
	}
}

func expenseEntry(e models.Expense) ExpenseEntry {
	entry := ExpenseEntry{
		ID:          e.ID,
		PayerID:     e.PayerID,
		Amount:      money.FormatCents(e.AmountCents),
		Description: e.Description,
		CreatedAt:   formatTimestamp(e.CreatedAt),
		Shares:      make([]ShareEntry, len(e.Shares)),
	}
	for i, share := range e.Shares {
		entry.Shares[i] = ShareEntry{
			ParticipantID: share.ParticipantID,
			Amount:        money.FormatCents(share.AmountCents),
		}
	}
	return entry
}

func paymentEntry(p models.Payment) PaymentEntry {
	return PaymentEntry{
		ID:        p.ID,
		FromID:    p.FromID,
		ToID:      p.ToID,
		Amount:    money.FormatCents(p.AmountCents),
		Note:      p.Note,
		CreatedAt: formatTimestamp(p.CreatedAt),
	}
}

func formatTimestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
