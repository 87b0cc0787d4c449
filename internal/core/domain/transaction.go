package domain

import "github.com/shopspring/decimal"

// Posting is one debit-or-credit leg of a journal entry against a named account.
// Account identity is the exact name.
type Posting struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// IsZero reports whether the posting carries no amount on either side.
func (p Posting) IsZero() bool {
	return p.Debit.IsZero() && p.Credit.IsZero()
}
