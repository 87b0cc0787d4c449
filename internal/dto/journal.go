package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingRequest is one leg of a journal entry in a create or update request.
type PostingRequest struct {
	Account string          `json:"account" binding:"required,max=200"`
	Debit   decimal.Decimal `json:"debit" binding:"amount_nonneg"`
	Credit  decimal.Decimal `json:"credit" binding:"amount_nonneg"`
}

// JournalEntryRequest defines the body for creating or replacing a journal entry.
type JournalEntryRequest struct {
	ID           string           `json:"id" binding:"omitempty,max=100"`
	Date         string           `json:"date" binding:"required"` // YYYY-MM-DD
	Description  string           `json:"description" binding:"max=500"`
	Transactions []PostingRequest `json:"transactions" binding:"required,min=1,dive"`
}

// ToDomain converts the request to a journal entry. Balance rules are checked by the service.
func (r JournalEntryRequest) ToDomain() (domain.JournalEntry, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	postings := make([]domain.Posting, len(r.Transactions))
	for i, p := range r.Transactions {
		postings[i] = domain.Posting{Account: p.Account, Debit: p.Debit, Credit: p.Credit}
	}

	return domain.JournalEntry{
		ID:           r.ID,
		Date:         date,
		Description:  r.Description,
		Transactions: postings,
	}, nil
}

// PostingResponse defines the data returned for a posting.
type PostingResponse struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Description  string            `json:"description"`
	CreatedAt    time.Time         `json:"createdAt"`
	Transactions []PostingResponse `json:"transactions"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
}

// ListJournalEntriesParams defines the query parameters for listing journal entries.
// A zero limit returns the rest of the journal.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of the ordered journal.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	Count     int                    `json:"count"`
	Total     int                    `json:"total"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	postings := make([]PostingResponse, len(e.Transactions))
	for i, p := range e.Transactions {
		postings[i] = PostingResponse{Account: p.Account, Debit: p.Debit, Credit: p.Credit}
	}
	debits, credits := e.Totals()
	return JournalEntryResponse{
		ID:           e.ID,
		Date:         e.Date.String(),
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
		Transactions: postings,
		TotalDebit:   debits,
		TotalCredit:  credits,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to []JournalEntryResponse.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
