package tools

// CreateGatheringInput is the MCP tool input for gathering creation.
type CreateGatheringInput struct {
	Name string `json:"name" jsonschema:"display name for the gathering"`
}

// ListGatheringsInput is the MCP tool input for listing gatherings.
type ListGatheringsInput struct{}

// ShowGatheringInput is the MCP tool input for reading one gathering.
type ShowGatheringInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
}

// CloseGatheringInput is the MCP tool input for closing a gathering.
type CloseGatheringInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
}

// DeleteGatheringInput is the MCP tool input for deleting a gathering.
type DeleteGatheringInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
	Force       bool   `json:"force,omitempty" jsonschema:"delete even if the gathering is closed"`
}

// AddParticipantInput is the MCP tool input for adding a participant.
type AddParticipantInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
	Name        string `json:"name" jsonschema:"display name for the participant"`
}

// RenameParticipantInput is the MCP tool input for renaming a participant.
type RenameParticipantInput struct {
	GatheringID   string `json:"gathering_id" jsonschema:"gathering identifier"`
	ParticipantID string `json:"participant_id" jsonschema:"participant identifier"`
	Name          string `json:"name" jsonschema:"new display name"`
}

// RemoveParticipantInput is the MCP tool input for removing a participant.
type RemoveParticipantInput struct {
	GatheringID   string `json:"gathering_id" jsonschema:"gathering identifier"`
	ParticipantID string `json:"participant_id" jsonschema:"participant identifier"`
}

// ShareInput is one participant's explicit portion of an expense.
type ShareInput struct {
	ParticipantID string `json:"participant_id" jsonschema:"participant who owes this portion"`
	Amount        string `json:"amount" jsonschema:"owed portion as a decimal string, e.g. 3.34"`
}

// AddExpenseInput is the MCP tool input for recording an expense.
// When shares is omitted the amount is split equally among all current
// participants.
type AddExpenseInput struct {
	GatheringID string       `json:"gathering_id" jsonschema:"gathering identifier"`
	PayerID     string       `json:"payer_id" jsonschema:"participant who paid"`
	Amount      string       `json:"amount" jsonschema:"total amount as a decimal string, e.g. 30.00"`
	Description string       `json:"description,omitempty" jsonschema:"what the expense was for"`
	Shares      []ShareInput `json:"shares,omitempty" jsonschema:"explicit share list; omit for an equal split among all participants"`
}

// RecordPaymentInput is the MCP tool input for recording a payment
// between two participants.
type RecordPaymentInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
	FromID      string `json:"from_participant_id" jsonschema:"participant who paid"`
	ToID        string `json:"to_participant_id" jsonschema:"participant who received the money"`
	Amount      string `json:"amount" jsonschema:"payment amount as a decimal string"`
	Note        string `json:"note,omitempty" jsonschema:"optional note"`
}

// GetBalancesInput is the MCP tool input for the balance query.
type GetBalancesInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
}

// GetSettlementInput is the MCP tool input for the settlement query.
type GetSettlementInput struct {
	GatheringID string `json:"gathering_id" jsonschema:"gathering identifier"`
}

// GatheringSummary is the MCP-visible form of a gathering header.
type GatheringSummary struct {
	ID        string `json:"id" jsonschema:"gathering identifier"`
	Name      string `json:"name" jsonschema:"gathering display name"`
	Status    string `json:"status" jsonschema:"open or closed"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the gathering was created"`
}

// ParticipantEntry is the MCP-visible form of a participant.
type ParticipantEntry struct {
	ID   string `json:"id" jsonschema:"participant identifier"`
	Name string `json:"name" jsonschema:"participant display name"`
}

// ShareEntry is the MCP-visible form of an expense share.
type ShareEntry struct {
	ParticipantID string `json:"participant_id"`
	Amount        string `json:"amount"`
}

// ExpenseEntry is the MCP-visible form of an expense.
type ExpenseEntry struct {
	ID          string       `json:"id"`
	PayerID     string       `json:"payer_id"`
	Amount      string       `json:"amount"`
	Description string       `json:"description,omitempty"`
	CreatedAt   string       `json:"created_at"`
	Shares      []ShareEntry `json:"shares"`
}

// PaymentEntry is the MCP-visible form of a payment.
type PaymentEntry struct {
	ID        string `json:"id"`
	FromID    string `json:"from_participant_id"`
	ToID      string `json:"to_participant_id"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateGatheringResult is the MCP tool output for gathering creation.
type CreateGatheringResult struct {
	Gathering GatheringSummary `json:"gathering"`
}

// ListGatheringsResult is the MCP tool output for listing gatherings.
type ListGatheringsResult struct {
	Gatherings []GatheringSummary `json:"gatherings"`
}

// ShowGatheringResult is the MCP tool output for reading one gathering.
type ShowGatheringResult struct {
	Gathering     GatheringSummary   `json:"gathering"`
	Participants  []ParticipantEntry `json:"participants"`
	Expenses      []ExpenseEntry     `json:"expenses"`
	Payments      []PaymentEntry     `json:"payments"`
	TotalExpenses string             `json:"total_expenses" jsonschema:"sum of all expense amounts"`
}

// CloseGatheringResult is the MCP tool output for closing a gathering.
type CloseGatheringResult struct {
	Gathering GatheringSummary `json:"gathering"`
}

// DeleteGatheringResult is the MCP tool output for deleting a gathering.
type DeleteGatheringResult struct {
	GatheringID string `json:"gathering_id"`
	Deleted     bool   `json:"deleted"`
}

// AddParticipantResult is the MCP tool output for adding a participant.
type AddParticipantResult struct {
	Participant ParticipantEntry `json:"participant"`
}

// RenameParticipantResult is the MCP tool output for renaming.
type RenameParticipantResult struct {
	Participant ParticipantEntry `json:"participant"`
}

// RemoveParticipantResult is the MCP tool output for removal.
type RemoveParticipantResult struct {
	ParticipantID string `json:"participant_id"`
	Removed       bool   `json:"removed"`
}

// AddExpenseResult is the MCP tool output for recording an expense.
type AddExpenseResult struct {
	Expense ExpenseEntry `json:"expense"`
}

// RecordPaymentResult is the MCP tool output for recording a payment.
type RecordPaymentResult struct {
	Payment PaymentEntry `json:"payment"`
}

// BalanceEntry is one participant's net position. Positive net means the
// group owes the participant money; negative means they owe the group.
type BalanceEntry struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Paid          string `json:"paid" jsonschema:"total put in: expenses paid plus payments sent"`
	Owed          string `json:"owed" jsonschema:"total charged: expense shares plus payments received"`
	Net           string `json:"net" jsonschema:"paid minus owed"`
}

// GetBalancesResult is the MCP tool output for the balance query.
type GetBalancesResult struct {
	GatheringID string         `json:"gathering_id"`
	Balances    []BalanceEntry `json:"balances"`
}

// TransferEntry is one leg of a settlement plan.
type TransferEntry struct {
	FromID   string `json:"from_participant_id"`
	FromName string `json:"from_name"`
	ToID     string `json:"to_participant_id"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

// GetSettlementResult is the MCP tool output for the settlement query.
// Applying every transfer zeroes all balances; the plan holds at most
// one fewer transfers than the gathering has participants.
type GetSettlementResult struct {
	GatheringID string          `json:"gathering_id"`
	Transfers   []TransferEntry `json:"transfers"`
}
