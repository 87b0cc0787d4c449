package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalNoPostings  = errors.New("journal entry must have at least one transaction")
	ErrJournalUnbalanced  = errors.New("journal entry does not balance")
	ErrAccountNameMissing = errors.New("account name is required")
	ErrPostingNegative    = errors.New("amounts must not be negative")
	ErrPostingBothSides   = errors.New("a transaction must be either a debit or a credit, not both")
	ErrPostingZero        = errors.New("a transaction must carry a positive debit or credit")
)

// SignedAmount returns the effect of a posting on the balance of an account of the given type.
//
// DEBIT to ASSET/EXPENSE -> +, CREDIT to ASSET/EXPENSE -> -
// DEBIT to LIABILITY/CAPITAL/REVENUE -> -, CREDIT to LIABILITY/CAPITAL/REVENUE -> +
func SignedAmount(p domain.Posting, accountType domain.AccountType) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return p.Debit.Sub(p.Credit)
	}
	return p.Credit.Sub(p.Debit)
}

// ValidateJournalEntry checks the posting rules and that debits equal credits.
// Every returned error wraps apperrors.ErrValidation.
func ValidateJournalEntry(entry domain.JournalEntry) error {
	if len(entry.Transactions) == 0 {
		return invalid(ErrJournalNoPostings)
	}

	allZero := true
	for _, p := range entry.Transactions {
		if !p.IsZero() {
			allZero = false
			break
		}
	}

	for i, p := range entry.Transactions {
		if p.Account == "" {
			return invalid(fmt.Errorf("transaction %d: %w", i+1, ErrAccountNameMissing))
		}
		if p.Debit.IsNegative() || p.Credit.IsNegative() {
			return invalid(fmt.Errorf("transaction %d (%s): %w", i+1, p.Account, ErrPostingNegative))
		}
		if p.Debit.IsPositive() && p.Credit.IsPositive() {
			return invalid(fmt.Errorf("transaction %d (%s): %w", i+1, p.Account, ErrPostingBothSides))
		}
		// An entry made only of zero postings is degenerate but harmless.
		if p.IsZero() && !allZero {
			return invalid(fmt.Errorf("transaction %d (%s): %w", i+1, p.Account, ErrPostingZero))
		}
	}

	debits, credits := entry.Totals()
	if !debits.Equal(credits) {
		return invalid(fmt.Errorf("%w: debits %s, credits %s", ErrJournalUnbalanced, debits.String(), credits.String()))
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
}
