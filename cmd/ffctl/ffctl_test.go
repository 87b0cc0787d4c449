package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/financeflow/internal/dto"
)

const sampleJournal = `[
	{
		"date": "2024-01-01",
		"description": "Owner investment",
		"transactions": [
			{"account": "Cash", "debit": 5000, "credit": 0},
			{"account": "Owner's Capital", "debit": 0, "credit": 5000}
		]
	},
	{
		"date": "2024-01-15",
		"description": "Cash sale",
		"transactions": [
			{"account": "Cash", "debit": 100, "credit": 0},
			{"account": "Sales Revenue", "debit": 0, "credit": 100}
		]
	},
	{
		"date": "2024-01-20",
		"description": "Rent",
		"transactions": [
			{"account": "Rent Expense", "debit": 40, "credit": 0},
			{"account": "Cash", "debit": 0, "credit": 40}
		]
	}
]`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_PATH", dir)
	t.Setenv("STORE_KEY", "ffctl_test_journal")
	return dir
}

func writeJournalFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportThenReport(t *testing.T) {
	setupStore(t)

	out, err := runCLI(t, "import", writeJournalFile(t, sampleJournal))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 entries, rejected 0")

	out, err = runCLI(t, "trial-balance", "-o", "json")
	require.NoError(t, err)
	var tb dto.TrialBalanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &tb))
	assert.True(t, tb.Balanced)
	assert.Len(t, tb.Rows, 4)
	assert.True(t, tb.Totals.Debit.Equal(decimal.NewFromInt(5100)), "got %s", tb.Totals.Debit)

	out, err = runCLI(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Net profit")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "Accounting equation holds")

	out, err = runCLI(t, "ledgers", "Cash")
	require.NoError(t, err)
	assert.Contains(t, out, "Cash (asset)")
	assert.Contains(t, out, "5060.00")

	out, err = runCLI(t, "entries")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner investment")
}

func TestImport_ReportsRejectedEntries(t *testing.T) {
	setupStore(t)

	unbalanced := `[
		{"date": "2024-02-01", "description": "Bad", "transactions": [
			{"account": "Cash", "debit": 10},
			{"account": "Sales Revenue", "credit": 9}
		]},
		{"date": "2024-02-02", "description": "Good", "transactions": [
			{"account": "Cash", "debit": 10},
			{"account": "Sales Revenue", "credit": 10}
		]}
	]`

	out, err := runCLI(t, "import", writeJournalFile(t, unbalanced))
	require.Error(t, err)
	assert.Contains(t, out, "Imported 1 entries, rejected 1")

	out, err = runCLI(t, "entries", "-o", "json")
	require.NoError(t, err)
	var entries []dto.JournalEntryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Good", entries[0].Description)
}

func TestLedgers_UnknownAccount(t *testing.T) {
	setupStore(t)

	_, err := runCLI(t, "ledgers", "Ghost")
	require.Error(t, err)
}

func TestClear_RequiresConfirmation(t *testing.T) {
	setupStore(t)

	_, err := runCLI(t, "import", writeJournalFile(t, sampleJournal))
	require.NoError(t, err)

	_, err = runCLI(t, "clear")
	require.Error(t, err)

	out, err := runCLI(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal cleared")

	out, err = runCLI(t, "entries", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	setupStore(t)

	_, err := runCLI(t, "entries", "-o", "yaml")
	require.Error(t, err)
}
