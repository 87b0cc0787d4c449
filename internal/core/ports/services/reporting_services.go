package services

import (
	"context"

	"github.com/SscSPs/financeflow/internal/core/domain"
)

// LedgerReaderSvc exposes the derived per-account ledgers.
type LedgerReaderSvc interface {
	// Ledgers returns every ledger in first-appearance order.
	Ledgers(ctx context.Context) []domain.Ledger

	// Ledger returns the ledger of one account.
	Ledger(ctx context.Context, accountName string) (*domain.Ledger, error)
}

// ReportingService defines operations for reading financial reports
type ReportingService interface {
	// TrialBalance returns the current trial balance.
	TrialBalance(ctx context.Context) domain.TrialBalance

	// FinancialSummary returns the current income-statement and balance-sheet totals.
	FinancialSummary(ctx context.Context) domain.FinancialSummary

	// Dashboard returns the summary with composition ratios and the most recent entries.
	Dashboard(ctx context.Context, recent int) domain.DashboardReport

	// ClassificationGaps lists account names that fell through to the default type.
	ClassificationGaps(ctx context.Context) []domain.ClassificationGap
}

// BookStateReaderSvc exposes the orchestrator state and full snapshots.
type BookStateReaderSvc interface {
	State(ctx context.Context) domain.BookState
	Snapshot(ctx context.Context) domain.Snapshot
}

// AccountClassifier resolves an account name to its type. The boolean is false when no
// rule matched and the type is a default.
type AccountClassifier interface {
	Classify(accountName string) (domain.AccountType, bool)
}
