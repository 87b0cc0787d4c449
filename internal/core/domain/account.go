package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Capital   AccountType = "capital"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// AccountTypes lists every account type in balance-sheet then income-statement order.
var AccountTypes = []AccountType{Asset, Liability, Capital, Revenue, Expense}

// IsDebitNormal reports whether balances of this type grow with debits (assets, expenses).
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Capital, Revenue, Expense:
		return true
	}
	return false
}

// ClassificationGap records an account name that matched no classification rule and
// was defaulted. It is not an error, but it can skew the financial summary.
type ClassificationGap struct {
	AccountName string      `json:"accountName"`
	DefaultedTo AccountType `json:"defaultedTo"`
}
