package accounting_test

import (
	"testing"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/SscSPs/financeflow/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSignedAmount(t *testing.T) {
	debit := domain.Posting{Account: "x", Debit: dec(100), Credit: decimal.Zero}
	credit := domain.Posting{Account: "x", Debit: decimal.Zero, Credit: dec(100)}

	tests := []struct {
		name        string
		posting     domain.Posting
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit asset", debit, domain.Asset, dec(100)},
		{"credit asset", credit, domain.Asset, dec(-100)},
		{"debit expense", debit, domain.Expense, dec(100)},
		{"debit liability", debit, domain.Liability, dec(-100)},
		{"credit capital", credit, domain.Capital, dec(100)},
		{"credit revenue", credit, domain.Revenue, dec(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedAmount(tt.posting, tt.accountType)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestValidateJournalEntry(t *testing.T) {
	tests := []struct {
		name      string
		postings  []domain.Posting
		wantErrIs error
	}{
		{
			name: "balanced",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(1000), Credit: decimal.Zero},
				{Account: "Sales Revenue", Debit: decimal.Zero, Credit: dec(1000)},
			},
		},
		{
			name: "compound balanced",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(700)},
				{Account: "Bank", Debit: dec(300)},
				{Account: "Sales Revenue", Credit: dec(1000)},
			},
		},
		{
			name:     "degenerate all zero",
			postings: []domain.Posting{{Account: "Cash"}, {Account: "Sales Revenue"}},
		},
		{
			name:      "no postings",
			postings:  nil,
			wantErrIs: accounting.ErrJournalNoPostings,
		},
		{
			name: "unbalanced",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(100)},
				{Account: "Sales Revenue", Credit: dec(90)},
			},
			wantErrIs: accounting.ErrJournalUnbalanced,
		},
		{
			name: "missing account",
			postings: []domain.Posting{
				{Account: "", Debit: dec(100)},
				{Account: "Sales Revenue", Credit: dec(100)},
			},
			wantErrIs: accounting.ErrAccountNameMissing,
		},
		{
			name: "negative amount",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(-100)},
				{Account: "Sales Revenue", Credit: dec(-100)},
			},
			wantErrIs: accounting.ErrPostingNegative,
		},
		{
			name: "both sides",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(100), Credit: dec(100)},
			},
			wantErrIs: accounting.ErrPostingBothSides,
		},
		{
			name: "zero leg next to real legs",
			postings: []domain.Posting{
				{Account: "Cash", Debit: dec(100)},
				{Account: "Suspense"},
				{Account: "Sales Revenue", Credit: dec(100)},
			},
			wantErrIs: accounting.ErrPostingZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateJournalEntry(domain.JournalEntry{ID: "e1", Transactions: tt.postings})
			if tt.wantErrIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErrIs)
		})
	}
}
