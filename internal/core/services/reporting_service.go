package services

import (
	"cmp"
	"slices"
	"time"

	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultRecentEntries is the number of entries shown on the dashboard when none is requested.
const DefaultRecentEntries = 5

var hundred = decimal.NewFromInt(100)

// GenerateTrialBalance lists every ledger balance in ledger order.
// A debit-normal balance goes in the debit column and a credit-normal one in the credit
// column; a negative balance moves to the opposite column so both columns stay non-negative.
func GenerateTrialBalance(ledgers *domain.LedgerSet) domain.TrialBalance {
	tb := domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, ledgers.Len()),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	ledgers.Each(func(l *domain.Ledger) {
		row := domain.TrialBalanceRow{
			AccountName: l.AccountName,
			AccountType: l.AccountType,
			DebitTotal:  decimal.Zero,
			CreditTotal: decimal.Zero,
		}

		onDebitSide := l.AccountType.IsDebitNormal()
		if l.Balance.IsNegative() {
			onDebitSide = !onDebitSide
		}
		if onDebitSide {
			row.DebitTotal = l.Balance.Abs()
		} else {
			row.CreditTotal = l.Balance.Abs()
		}

		tb.TotalDebit = tb.TotalDebit.Add(row.DebitTotal)
		tb.TotalCredit = tb.TotalCredit.Add(row.CreditTotal)
		tb.Rows = append(tb.Rows, row)
	})

	return tb
}

// CalculateFinancialSummary sums ledger balances by account type.
func CalculateFinancialSummary(ledgers *domain.LedgerSet) domain.FinancialSummary {
	totals := make(map[domain.AccountType]decimal.Decimal, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		totals[t] = decimal.Zero
	}
	ledgers.Each(func(l *domain.Ledger) {
		totals[l.AccountType] = totals[l.AccountType].Add(l.Balance)
	})

	return domain.FinancialSummary{
		TotalRevenue:     totals[domain.Revenue],
		TotalExpenses:    totals[domain.Expense],
		NetProfit:        totals[domain.Revenue].Sub(totals[domain.Expense]),
		TotalAssets:      totals[domain.Asset],
		TotalLiabilities: totals[domain.Liability],
		TotalCapital:     totals[domain.Capital],
	}
}

// BuildDashboard adds balance-sheet composition ratios and the most recently created
// entries to a summary. recent <= 0 selects DefaultRecentEntries.
func BuildDashboard(summary domain.FinancialSummary, entries []domain.JournalEntry, recent int, now time.Time) domain.DashboardReport {
	if recent <= 0 {
		recent = DefaultRecentEntries
	}

	sorted := domain.CloneEntries(entries)
	slices.SortStableFunc(sorted, func(a, b domain.JournalEntry) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	if len(sorted) > recent {
		sorted = sorted[:recent]
	}

	return domain.DashboardReport{
		Summary:          summary,
		LiabilitiesRatio: percentOf(summary.TotalLiabilities, summary.TotalAssets),
		CapitalRatio:     percentOf(summary.TotalCapital, summary.TotalAssets),
		RecentEntries:    sorted,
		GeneratedAt:      now,
	}
}

// percentOf returns part as a percentage of whole rounded to one decimal, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(1)
}
