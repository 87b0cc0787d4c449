package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// TrialBalance is the ordered listing of every account balance split into columns.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// IsBalanced reports whether total debits equal total credits.
func (tb TrialBalance) IsBalanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// FinancialSummary aggregates ledger balances into income-statement and balance-sheet totals.
type FinancialSummary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal `json:"totalCapital"`
}

// EquationDifference returns assets - (liabilities + capital + net profit).
// A non-zero value usually means a misclassified account.
func (s FinancialSummary) EquationDifference() decimal.Decimal {
	return s.TotalAssets.Sub(s.TotalLiabilities.Add(s.TotalCapital).Add(s.NetProfit))
}

// IsEquationBalanced reports whether Assets = Liabilities + Capital + Net Profit holds.
func (s FinancialSummary) IsEquationBalanced() bool {
	return s.EquationDifference().IsZero()
}

// DashboardReport is the overview shown on the landing page.
type DashboardReport struct {
	Summary          FinancialSummary `json:"summary"`
	LiabilitiesRatio decimal.Decimal  `json:"liabilitiesRatio"` // percent of total assets
	CapitalRatio     decimal.Decimal  `json:"capitalRatio"`     // percent of total assets
	RecentEntries    []JournalEntry   `json:"recentEntries"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
