package domain

import (
	"slices"
	"time"
)

// BookState is the recompute state of the derived artifacts.
type BookState string

const (
	// StateStale means the journal changed and derived artifacts are not rebuilt yet.
	StateStale BookState = "stale"
	// StateConsistent means derived artifacts match the current journal.
	StateConsistent BookState = "consistent"
)

// Snapshot is an immutable view of the journal and everything derived from it.
type Snapshot struct {
	Version            uint64              `json:"version"`
	RebuiltAt          time.Time           `json:"rebuiltAt"`
	JournalEntries     []JournalEntry      `json:"journalEntries"`
	Ledgers            *LedgerSet          `json:"ledgers"`
	TrialBalance       TrialBalance        `json:"trialBalance"`
	FinancialSummary   FinancialSummary    `json:"financialSummary"`
	ClassificationGaps []ClassificationGap `json:"classificationGaps"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.JournalEntries = CloneEntries(s.JournalEntries)
	out.Ledgers = s.Ledgers.Clone()
	out.TrialBalance.Rows = slices.Clone(s.TrialBalance.Rows)
	out.ClassificationGaps = slices.Clone(s.ClassificationGaps)
	return out
}

// RecomputeStats describes one full rebuild of the derived artifacts.
type RecomputeStats struct {
	Entries            int
	Postings           int
	Accounts           int
	ClassificationGaps int
	Duration           time.Duration
	Balanced           bool
}

// LoadReport summarizes what a load found in the persisted journal.
type LoadReport struct {
	Loaded      int  `json:"loaded"`
	Stamped     int  `json:"stamped"`     // loaded entries given a missing id or createdAt
	Quarantined int  `json:"quarantined"` // entries moved to the quarantine slot
	Discarded   bool `json:"discarded"`   // the whole slot was malformed
}
