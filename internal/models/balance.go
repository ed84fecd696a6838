package models

// MemberBalance represents one participant's derived net position.
// Recomputed from expenses and payments on every query, never persisted.
type MemberBalance struct {
	// ParticipantID identifies the participant.
	ParticipantID string

	// Name is the participant's display name at computation time.
	Name string

	// PaidCents is everything this participant put in: expenses paid
	// plus payments sent.
	PaidCents int64

	// OwedCents is everything charged to this participant: expense
	// shares plus payments received.
	OwedCents int64

	// NetCents is PaidCents − OwedCents. Positive means the group owes
	// this participant money; negative means they owe the group.
	NetCents int64
}

// Transfer is one leg of a settlement plan: FromID pays ToID AmountCents.
// Amounts are always strictly positive.
type Transfer struct {
	FromID      string
	ToID        string
	AmountCents int64
}
