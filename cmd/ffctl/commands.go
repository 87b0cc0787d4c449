package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/core/domain"
	"github.com/SscSPs/financeflow/internal/dto"
	"github.com/SscSPs/financeflow/internal/utils"
)

func newEntriesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List journal entries in log order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			entries := book.ListEntries(ctx)
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, dto.ToJournalEntryResponses(entries))
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tID\tDESCRIPTION\tACCOUNT\tDEBIT\tCREDIT")
			for _, e := range entries {
				for i, p := range e.Transactions {
					date, id, desc := "", "", ""
					if i == 0 {
						date, id, desc = e.Date.String(), e.ID, e.Description
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", date, id, desc, p.Account,
						utils.FormatAmount(p.Debit, opts.precision), utils.FormatAmount(p.Credit, opts.precision))
				}
			}
			return tw.Flush()
		},
	}
}

func newLedgersCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ledgers [account]",
		Short: "Show account ledgers, or the detail of one account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				ledger, err := book.Ledger(ctx, args[0])
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return writeJSON(out, dto.ToLedgerResponse(ledger))
				}
				return printLedgerDetail(out, ledger, opts.precision)
			}

			ledgers := book.Ledgers(ctx)
			if opts.format == formatJSON {
				return writeJSON(out, dto.ToLedgerResponses(ledgers))
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tTYPE\tPOSTINGS\tBALANCE")
			for _, l := range ledgers {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.AccountName, l.AccountType, len(l.Transactions),
					utils.FormatWithPrecision(l.Balance, opts.precision))
			}
			return tw.Flush()
		},
	}
}

func printLedgerDetail(out io.Writer, ledger *domain.Ledger, precision int) error {
	fmt.Fprintf(out, "%s (%s)\n", ledger.AccountName, ledger.AccountType)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tDEBIT\tCREDIT\tBALANCE")
	for _, t := range ledger.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Date.String(), t.Description,
			utils.FormatAmount(t.Debit, precision), utils.FormatAmount(t.Credit, precision),
			utils.FormatWithPrecision(t.RunningBalance, precision))
	}
	fmt.Fprintf(tw, "\t\t\tClosing balance\t%s\n", utils.FormatWithPrecision(ledger.Balance, precision))
	return tw.Flush()
}

func newTrialBalanceCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			tb := book.TrialBalance(ctx)
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, dto.ToTrialBalanceResponse(tb))
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "ACCOUNT\tTYPE\tDEBIT\tCREDIT\t")
			for _, row := range tb.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.AccountName, row.AccountType,
					utils.FormatAmount(row.DebitTotal, opts.precision), utils.FormatAmount(row.CreditTotal, opts.precision))
			}
			fmt.Fprintf(tw, "Total\t\t%s\t%s\t\n",
				utils.FormatWithPrecision(tb.TotalDebit, opts.precision), utils.FormatWithPrecision(tb.TotalCredit, opts.precision))
			if err := tw.Flush(); err != nil {
				return err
			}
			if !tb.IsBalanced() {
				fmt.Fprintln(out, "WARNING: trial balance does not balance")
			}
			return nil
		},
	}
}

func newSummaryCmd(opts *cliOptions) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the financial summary and accounting equation check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			report := book.Dashboard(ctx, recent)
			gaps := book.ClassificationGaps(ctx)
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, dto.ToDashboardResponse(report, gaps))
			}

			s := report.Summary
			p := opts.precision
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total revenue\t%s\n", utils.FormatWithPrecision(s.TotalRevenue, p))
			fmt.Fprintf(tw, "Total expenses\t%s\n", utils.FormatWithPrecision(s.TotalExpenses, p))
			fmt.Fprintf(tw, "Net profit\t%s\n", utils.FormatWithPrecision(s.NetProfit, p))
			fmt.Fprintf(tw, "Total assets\t%s\n", utils.FormatWithPrecision(s.TotalAssets, p))
			fmt.Fprintf(tw, "Total liabilities\t%s\t%s\n", utils.FormatWithPrecision(s.TotalLiabilities, p), utils.FormatPercent(report.LiabilitiesRatio))
			fmt.Fprintf(tw, "Total capital\t%s\t%s\n", utils.FormatWithPrecision(s.TotalCapital, p), utils.FormatPercent(report.CapitalRatio))
			if err := tw.Flush(); err != nil {
				return err
			}

			if s.IsEquationBalanced() {
				fmt.Fprintln(out, "Accounting equation holds")
			} else {
				fmt.Fprintf(out, "Accounting equation off by %s\n", utils.FormatWithPrecision(s.EquationDifference(), p))
			}
			for _, gap := range gaps {
				fmt.Fprintf(out, "Unclassified account %q treated as %s\n", gap.AccountName, gap.DefaultedTo)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 0, "Recent entries included in JSON output (default 5)")
	return cmd
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	var stopOnError bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Add journal entries from a JSON array file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var entries []domain.JournalEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			added, rejected := 0, 0
			for i, entry := range entries {
				_, err := book.AddEntry(ctx, entry)
				switch {
				case err == nil:
					added++
				case errors.Is(err, apperrors.ErrPersistence):
					return fmt.Errorf("entry %d added but journal could not be saved: %w", i+1, err)
				default:
					rejected++
					fmt.Fprintf(cmd.ErrOrStderr(), "entry %d rejected: %v\n", i+1, err)
					if stopOnError {
						return fmt.Errorf("import stopped after %d entries", added)
					}
				}
			}

			fmt.Fprintf(out, "Imported %d entries, rejected %d\n", added, rejected)
			if rejected > 0 {
				return fmt.Errorf("%d entries rejected", rejected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first rejected entry")
	return cmd
}

func newClearCmd(opts *cliOptions) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every journal entry from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to clear the journal without --yes")
			}
			ctx, book, closeStore, err := openBook(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := book.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm clearing the journal")
	return cmd
}
