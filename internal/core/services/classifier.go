package services

import (
	"strings"
	"unicode"

	"github.com/SscSPs/financeflow/internal/core/domain"
	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
)

// ClassificationRule maps any of its keywords to an account type.
//
// Keywords match whole words of the account name; a trailing "*" marks a stem that matches
// the start of a word ("salar*" matches "Salaries"). Multi-word keywords match consecutive
// words. A Qualifier rule wins wherever its keyword appears ("Prepaid Rent" is an asset).
// Among the other rules the match nearest the end of the name wins, so the head noun
// decides ("Rent Receivable" is an asset), with ties going to the earlier rule.
type ClassificationRule struct {
	Type      domain.AccountType
	Keywords  []string
	Qualifier bool
}

// DefaultClassificationRules is the built-in rule table.
var DefaultClassificationRules = []ClassificationRule{
	{Type: domain.Asset, Keywords: []string{"prepaid"}, Qualifier: true},
	{Type: domain.Liability, Keywords: []string{"accrued", "unearned"}, Qualifier: true},
	{Type: domain.Liability, Keywords: []string{"payable", "loan*", "liabilit*", "mortgage*", "overdraft*"}},
	{Type: domain.Capital, Keywords: []string{"capital", "equity", "drawing*", "retained earnings"}},
	{Type: domain.Expense, Keywords: []string{"expense*", "cost of", "rent", "salar*", "wage*", "utilit*", "depreciation"}},
	{Type: domain.Revenue, Keywords: []string{"sales", "revenue*", "income"}},
	{Type: domain.Asset, Keywords: []string{"cash", "bank", "receivable*", "inventor*", "equipment", "asset*", "furniture", "vehicle*", "building*", "land"}},
}

// DefaultAccountType is assigned to names that match no rule.
const DefaultAccountType = domain.Expense

type keyword struct {
	words []string
	stem  bool // last word is a prefix
}

type compiledRule struct {
	accountType domain.AccountType
	qualifier   bool
	keywords    []keyword
}

// keywordClassifier matches keywords against the words of an account name.
type keywordClassifier struct {
	rules    []compiledRule
	fallback domain.AccountType
}

// NewKeywordClassifier builds a classifier from an ordered rule table.
// With no rules it uses DefaultClassificationRules.
func NewKeywordClassifier(rules ...ClassificationRule) portssvc.AccountClassifier {
	if len(rules) == 0 {
		rules = DefaultClassificationRules
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{accountType: r.Type, qualifier: r.Qualifier}
		for _, kw := range r.Keywords {
			kw = strings.TrimSpace(kw)
			stem := strings.HasSuffix(kw, "*")
			if words := nameWords(strings.TrimSuffix(kw, "*")); len(words) > 0 {
				cr.keywords = append(cr.keywords, keyword{words: words, stem: stem})
			}
		}
		compiled = append(compiled, cr)
	}
	return &keywordClassifier{rules: compiled, fallback: DefaultAccountType}
}

// Classify returns the type of the winning rule, or the default type and false.
func (c *keywordClassifier) Classify(accountName string) (domain.AccountType, bool) {
	words := nameWords(accountName)
	if len(words) == 0 {
		return c.fallback, false
	}

	for _, r := range c.rules {
		if r.qualifier && r.lastMatch(words) >= 0 {
			return r.accountType, true
		}
	}

	best, bestEnd := -1, -1
	for i, r := range c.rules {
		if r.qualifier {
			continue
		}
		if end := r.lastMatch(words); end > bestEnd {
			best, bestEnd = i, end
		}
	}
	if best < 0 {
		return c.fallback, false
	}
	return c.rules[best].accountType, true
}

// lastMatch returns the index of the last word of the rightmost keyword match, or -1.
func (r compiledRule) lastMatch(words []string) int {
	end := -1
	for _, kw := range r.keywords {
		if e := kw.lastMatch(words); e > end {
			end = e
		}
	}
	return end
}

func (k keyword) lastMatch(words []string) int {
	n := len(k.words)
	for i := len(words) - n; i >= 0; i-- {
		if k.matchesAt(words[i : i+n]) {
			return i + n - 1
		}
	}
	return -1
}

func (k keyword) matchesAt(window []string) bool {
	last := len(k.words) - 1
	for j, w := range k.words {
		if j == last && k.stem {
			if !strings.HasPrefix(window[j], w) {
				return false
			}
		} else if window[j] != w {
			return false
		}
	}
	return true
}

// nameWords lower-cases s and splits it on anything that is not a letter or digit.
func nameWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
