package dto

import (
	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTransactionResponse is one line of an account ledger.
type LedgerTransactionResponse struct {
	EntryID        string          `json:"entryID"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse defines the data returned for an account ledger.
type LedgerResponse struct {
	AccountName    string                      `json:"accountName"`
	AccountType    string                      `json:"accountType"`
	OpeningBalance decimal.Decimal             `json:"openingBalance"`
	Balance        decimal.Decimal             `json:"balance"`
	Transactions   []LedgerTransactionResponse `json:"transactions"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	txns := make([]LedgerTransactionResponse, len(l.Transactions))
	for i, t := range l.Transactions {
		txns[i] = LedgerTransactionResponse{
			EntryID:        t.EntryID,
			Date:           t.Date.String(),
			Description:    t.Description,
			Debit:          t.Debit,
			Credit:         t.Credit,
			RunningBalance: t.RunningBalance,
		}
	}
	return LedgerResponse{
		AccountName:    l.AccountName,
		AccountType:    string(l.AccountType),
		OpeningBalance: l.OpeningBalance,
		Balance:        l.Balance,
		Transactions:   txns,
	}
}

// ToLedgerResponses converts ledgers in order.
func ToLedgerResponses(ledgers []domain.Ledger) []LedgerResponse {
	responses := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		responses[i] = ToLedgerResponse(&ledgers[i])
	}
	return responses
}
