package models

// Expense represents a payment made by one participant on behalf of
// several, apportioned as owed shares.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GatheringID is the gathering this expense belongs to.
	GatheringID string

	// PayerID is the participant who paid the full amount. The payer need
	// not appear in Shares (they may have paid entirely for others).
	PayerID string

	// AmountCents is the total amount in minor units. Always positive.
	AmountCents int64

	// Description says what the expense was for.
	Description string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Shares apportions the amount among participants. Share order is
	// preserved; the shares sum to AmountCents exactly.
	Shares []Share
}

// Share is one participant's owed portion of an expense.
type Share struct {
	// ParticipantID is the participant who owes this portion.
	ParticipantID string

	// AmountCents is the owed portion in minor units.
	AmountCents int64
}

// Payment represents a direct transfer between two participants,
// typically made to settle debt. Payments shift balances: the sender's
// net position improves, the receiver's decreases.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GatheringID is the gathering this payment belongs to.
	GatheringID string

	// FromID is the participant who paid.
	FromID string

	// ToID is the participant who received the money.
	ToID string

	// AmountCents is the payment amount in minor units. Always positive.
	AmountCents int64

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
