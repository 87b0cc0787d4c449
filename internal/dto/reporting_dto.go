package dto

import (
	"time"

	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TotalsResponse carries the debit and credit column sums.
type TotalsResponse struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   TotalsResponse            `json:"totals"`
	Balanced bool                      `json:"balanced"`
}

// FinancialSummaryResponse represents the income statement and balance sheet totals
type FinancialSummaryResponse struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal `json:"totalCapital"`
	Equation         EquationCheck   `json:"equation"`

	ClassificationGaps []domain.ClassificationGap `json:"classificationGaps"`
}

// EquationCheck reports whether Assets = Liabilities + Capital + Net Profit.
type EquationCheck struct {
	Balanced   bool            `json:"balanced"`
	Difference decimal.Decimal `json:"difference"`
}

// DashboardResponse represents the landing page overview
type DashboardResponse struct {
	Summary          FinancialSummaryResponse `json:"summary"`
	LiabilitiesRatio decimal.Decimal          `json:"liabilitiesRatio"`
	CapitalRatio     decimal.Decimal          `json:"capitalRatio"`
	RecentEntries    []JournalEntryResponse   `json:"recentEntries"`
	GeneratedAt      time.Time                `json:"generatedAt"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       r.DebitTotal,
			Credit:      r.CreditTotal,
		}
	}
	return TrialBalanceResponse{
		Rows:     rows,
		Totals:   TotalsResponse{Debit: tb.TotalDebit, Credit: tb.TotalCredit},
		Balanced: tb.IsBalanced(),
	}
}

// ToFinancialSummaryResponse converts a domain.FinancialSummary to its response DTO.
func ToFinancialSummaryResponse(s domain.FinancialSummary, gaps []domain.ClassificationGap) FinancialSummaryResponse {
	if gaps == nil {
		gaps = []domain.ClassificationGap{}
	}
	return FinancialSummaryResponse{
		TotalRevenue:     s.TotalRevenue,
		TotalExpenses:    s.TotalExpenses,
		NetProfit:        s.NetProfit,
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		TotalCapital:     s.TotalCapital,
		Equation: EquationCheck{
			Balanced:   s.IsEquationBalanced(),
			Difference: s.EquationDifference(),
		},
		ClassificationGaps: gaps,
	}
}

// ToDashboardResponse converts a domain.DashboardReport to its response DTO.
func ToDashboardResponse(d domain.DashboardReport, gaps []domain.ClassificationGap) DashboardResponse {
	return DashboardResponse{
		Summary:          ToFinancialSummaryResponse(d.Summary, gaps),
		LiabilitiesRatio: d.LiabilitiesRatio,
		CapitalRatio:     d.CapitalRatio,
		RecentEntries:    ToJournalEntryResponses(d.RecentEntries),
		GeneratedAt:      d.GeneratedAt,
	}
}
