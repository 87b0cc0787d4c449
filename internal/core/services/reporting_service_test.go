package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/SscSPs/financeflow/internal/core/services"
)

func TestBuildLedgers_OrderAndGaps(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1", "Sale", debit("Cash", "100"), credit("Sales Revenue", "100")),
		entry("2", "Odd", debit("Sundry", "30"), credit("Cash", "30")),
		entry("3", "Odd again", debit("Sundry", "5"), credit("Cash", "5")),
	}

	ledgers, gaps := services.BuildLedgers(entries, services.NewKeywordClassifier())

	assert.Equal(t, []string{"Cash", "Sales Revenue", "Sundry"}, ledgers.Names())
	require.Len(t, gaps, 1, "each unclassified account is reported once")
	assert.Equal(t, domain.ClassificationGap{AccountName: "Sundry", DefaultedTo: domain.Expense}, gaps[0])

	cash, ok := ledgers.Get("Cash")
	require.True(t, ok)
	require.Len(t, cash.Transactions, 3)
	assert.True(t, cash.Transactions[1].RunningBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, cash.Balance.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, "3", cash.Transactions[2].EntryID)
}

func TestBuildLedgers_Empty(t *testing.T) {
	ledgers, gaps := services.BuildLedgers(nil, services.NewKeywordClassifier())
	assert.Equal(t, 0, ledgers.Len())
	assert.Empty(t, gaps)

	tb := services.GenerateTrialBalance(ledgers)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.TotalDebit.IsZero())
	assert.True(t, tb.IsBalanced())

	summary := services.CalculateFinancialSummary(ledgers)
	assert.True(t, summary.IsEquationBalanced())
}

func TestGenerateTrialBalance_Columns(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1", "Capital", debit("Cash", "500"), credit("Owner's Capital", "500")),
		entry("2", "Refund exceeding sales", debit("Sales Revenue", "50"), credit("Cash", "50")),
	}
	ledgers, _ := services.BuildLedgers(entries, services.NewKeywordClassifier())

	tb := services.GenerateTrialBalance(ledgers)
	require.Len(t, tb.Rows, 3)

	rows := map[string]domain.TrialBalanceRow{}
	for _, r := range tb.Rows {
		rows[r.AccountName] = r
	}
	assert.True(t, rows["Cash"].DebitTotal.Equal(decimal.NewFromInt(450)))
	assert.True(t, rows["Owner's Capital"].CreditTotal.Equal(decimal.NewFromInt(500)))
	// Revenue with a debit balance moves to the debit column.
	assert.True(t, rows["Sales Revenue"].DebitTotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, rows["Sales Revenue"].CreditTotal.IsZero())

	assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, tb.IsBalanced())
}

func TestCalculateFinancialSummary(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1", "Invest", debit("Cash", "1000"), credit("Owner's Capital", "1000")),
		entry("2", "Borrow", debit("Bank", "400"), credit("Bank Loan", "400")),
		entry("3", "Sell", debit("Accounts Receivable", "250.50"), credit("Sales Revenue", "250.50")),
		entry("4", "Pay wages", debit("Wages", "100.25"), credit("Cash", "100.25")),
	}
	ledgers, _ := services.BuildLedgers(entries, services.NewKeywordClassifier())

	summary := services.CalculateFinancialSummary(ledgers)

	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("100.25")))
	assert.True(t, summary.NetProfit.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, summary.TotalAssets.Equal(decimal.RequireFromString("1550.25")))
	assert.True(t, summary.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	assert.True(t, summary.TotalCapital.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.IsEquationBalanced())
}

func TestBuildDashboard_NoAssets(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	summary := domain.FinancialSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.NewFromInt(10),
		TotalCapital:     decimal.NewFromInt(-10),
	}

	report := services.BuildDashboard(summary, nil, 0, now)

	assert.True(t, report.LiabilitiesRatio.IsZero())
	assert.True(t, report.CapitalRatio.IsZero())
	assert.Empty(t, report.RecentEntries)
	assert.True(t, report.GeneratedAt.Equal(now))
}

func TestBuildDashboard_RecentEntriesByCreatedAt(t *testing.T) {
	base := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	var entries []domain.JournalEntry
	for i, offset := range []int{3, 1, 7, 5, 2, 6, 4} {
		e := entry(string(rune('a'+i)), "e", debit("Cash", "1"), credit("Sales Revenue", "1"))
		e.CreatedAt = base.Add(time.Duration(offset) * time.Hour)
		entries = append(entries, e)
	}

	report := services.BuildDashboard(domain.FinancialSummary{}, entries, 0, base)

	require.Len(t, report.RecentEntries, services.DefaultRecentEntries)
	ids := make([]string, 0, len(report.RecentEntries))
	for _, e := range report.RecentEntries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"c", "f", "d", "g", "a"}, ids)
	// The input order is untouched.
	assert.Equal(t, "a", entries[0].ID)
}
