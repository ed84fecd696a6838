package models

// GatheringStatus is the lifecycle state of a gathering.
type GatheringStatus string

const (
	// GatheringOpen accepts new participants, expenses, and payments.
	GatheringOpen GatheringStatus = "open"

	// GatheringClosed rejects all further mutations. Closed gatherings
	// can still be read and settled, and deleted with force.
	GatheringClosed GatheringStatus = "closed"
)

// Gathering represents a named group of participants sharing expenses.
type Gathering struct {
	// ID is the unique identifier for the gathering (UUID format),
	// assigned by the store at creation.
	ID string

	// Name is the display name of the gathering (e.g., "Ski Trip 2026").
	Name string

	// Status is the lifecycle state, open or closed.
	Status GatheringStatus

	// CreatedAt is the Unix timestamp when the gathering was created.
	CreatedAt int64

	// Participants are the members of this gathering, in insertion order.
	// Populated on full reads; nil on listing.
	Participants []Participant

	// Expenses are the recorded expenses, in insertion order.
	// Populated on full reads; nil on listing.
	Expenses []Expense

	// Payments are the recorded member-to-member payments, in insertion
	// order. Populated on full reads; nil on listing.
	Payments []Payment
}

// Participant represents a member of a gathering.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// GatheringID is the gathering this participant belongs to.
	GatheringID string

	// Name is the display name. Renaming is the only permitted mutation.
	Name string
}
