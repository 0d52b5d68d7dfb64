package domain

// RecurrenceType describes how often a recurring event repeats.
type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "none"
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
	RecurrenceBiWeekly RecurrenceType = "bi-weekly"
)

// ValidRecurrenceTypes is the canonical set of accepted recurrence literals.
// The same five literals form the rec_freq wire contract with the completion
// service and must not be extended without versioning the prompt.
var ValidRecurrenceTypes = map[RecurrenceType]bool{
	RecurrenceNone:     true,
	RecurrenceDaily:    true,
	RecurrenceWeekly:   true,
	RecurrenceMonthly:  true,
	RecurrenceBiWeekly: true,
}

// Well-known event categories. Category is free text; these are the values
// the engine itself assigns.
const (
	CategoryUncategorized = "Uncategorized"
	CategoryMicrotask     = "Microtask"
	CategoryImported      = "Imported"
)

// ChangeKind identifies what happened to an event in a schedule change.
type ChangeKind string

const (
	ChangeMove   ChangeKind = "move"
	ChangeDelete ChangeKind = "delete"
)
