package services

import (
	"github.com/SscSPs/financeflow/internal/core/domain"
	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/utils/accounting"
)

// BuildLedgers folds the journal into per-account ledgers in a single pass.
// Ledgers appear in the order their account is first posted to. Each account is
// classified once; names no rule matched are returned as classification gaps.
func BuildLedgers(entries []domain.JournalEntry, classifier portssvc.AccountClassifier) (*domain.LedgerSet, []domain.ClassificationGap) {
	ledgers := domain.NewLedgerSet()
	gaps := []domain.ClassificationGap{}

	for _, entry := range entries {
		for _, p := range entry.Transactions {
			ledger, ok := ledgers.Get(p.Account)
			if !ok {
				accountType, matched := classifier.Classify(p.Account)
				if !matched {
					gaps = append(gaps, domain.ClassificationGap{AccountName: p.Account, DefaultedTo: accountType})
				}
				ledger = ledgers.GetOrCreate(p.Account, accountType)
			}

			ledger.Balance = ledger.Balance.Add(accounting.SignedAmount(p, ledger.AccountType))
			ledger.Transactions = append(ledger.Transactions, domain.LedgerTransaction{
				EntryID:        entry.ID,
				Date:           entry.Date,
				Description:    entry.Description,
				Debit:          p.Debit,
				Credit:         p.Credit,
				RunningBalance: ledger.Balance,
			})
		}
	}

	return ledgers, gaps
}
