package domain

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is one posting as it appears in an account's ledger, tagged with the
// entry it came from.
type LedgerTransaction struct {
	EntryID        string          `json:"entryID"`
	Date           Date            `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // balance after this posting
}

// Ledger is the derived history and balance of a single account.
type Ledger struct {
	AccountName    string              `json:"accountName"`
	AccountType    AccountType         `json:"accountType"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"` // always zero; no period carry-forward
	Balance        decimal.Decimal     `json:"balance"`
	Transactions   []LedgerTransaction `json:"transactions"`
}

// Clone returns a copy that shares no slices with l.
func (l Ledger) Clone() Ledger {
	l.Transactions = slices.Clone(l.Transactions)
	return l
}

// LedgerSet maps account names to ledgers, iterating in first-appearance order.
type LedgerSet struct {
	order  []string
	byName map[string]*Ledger
}

// NewLedgerSet returns an empty set.
func NewLedgerSet() *LedgerSet {
	return &LedgerSet{byName: make(map[string]*Ledger)}
}

// Get returns the ledger for an account name.
func (s *LedgerSet) Get(name string) (*Ledger, bool) {
	if s == nil {
		return nil, false
	}
	l, ok := s.byName[name]
	return l, ok
}

// GetOrCreate returns the ledger for name, creating an empty one of type t if absent.
func (s *LedgerSet) GetOrCreate(name string, t AccountType) *Ledger {
	if l, ok := s.byName[name]; ok {
		return l
	}
	l := &Ledger{
		AccountName:    name,
		AccountType:    t,
		OpeningBalance: decimal.Zero,
		Balance:        decimal.Zero,
		Transactions:   []LedgerTransaction{},
	}
	s.byName[name] = l
	s.order = append(s.order, name)
	return l
}

// Len returns the number of accounts.
func (s *LedgerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns account names in first-appearance order.
func (s *LedgerSet) Names() []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s.order)
}

// Each calls fn for every ledger in order.
func (s *LedgerSet) Each(fn func(l *Ledger)) {
	if s == nil {
		return
	}
	for _, name := range s.order {
		fn(s.byName[name])
	}
}

// Ledgers returns deep copies of all ledgers in order.
func (s *LedgerSet) Ledgers() []Ledger {
	out := make([]Ledger, 0, s.Len())
	s.Each(func(l *Ledger) {
		out = append(out, l.Clone())
	})
	return out
}

// Clone returns a deep copy of the set.
func (s *LedgerSet) Clone() *LedgerSet {
	out := NewLedgerSet()
	s.Each(func(l *Ledger) {
		c := l.Clone()
		out.byName[c.AccountName] = &c
		out.order = append(out.order, c.AccountName)
	})
	return out
}

// MarshalJSON encodes the set as an ordered array of ledgers.
func (s *LedgerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ledgers())
}
