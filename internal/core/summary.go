package core

// Totals is the headline aggregate shown for a viewing month. Income and
// Expense are scoped to the month; Balance is the lifetime net across the
// whole collection. That asymmetry is deliberate: balance is net worth,
// income/expense are monthly flow.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// CategoryShare is a per-category slice of a month's flow.
type CategoryShare struct {
	Category Category
	Amount   Money
	// Percentage of the month's total flow for the same type, 0 when
	// the month has no flow.
	Percentage float64
}

// CardInvoice lists a card's transactions for one month. IsPaid is always
// false: payment tracking is not implemented, callers must not read
// status into it.
type CardInvoice struct {
	CardID       string
	Month        int
	Year         int
	Transactions []Transaction
	TotalAmount  Money
	IsPaid       bool
}

// CardStatus is a card plus its computed utilization for the current
// real-world month. UsedPercentage is clamped to 100 and Available to
// zero so the presentation never shows an over-full bar or a negative
// remainder.
type CardStatus struct {
	Card           CreditCard
	Used           Money
	Available      Money
	UsedPercentage float64
}
