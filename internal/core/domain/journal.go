package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single balanced business event made of one or more postings.
// Committed entries are immutable; an update replaces the entry wholesale.
type JournalEntry struct {
	ID           string    `json:"id"`
	Date         Date      `json:"date"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	Transactions []Posting `json:"transactions"`
}

// Clone returns a copy that shares no slices with e.
func (e JournalEntry) Clone() JournalEntry {
	e.Transactions = slices.Clone(e.Transactions)
	return e
}

// Totals returns the sum of debits and the sum of credits across all postings.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, p := range e.Transactions {
		debits = debits.Add(p.Debit)
		credits = credits.Add(p.Credit)
	}
	return debits, credits
}

// CloneEntries deep-copies a journal.
func CloneEntries(entries []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
