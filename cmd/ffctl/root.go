package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/financeflow/internal/adapters/storage"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/core/services"
	"github.com/SscSPs/financeflow/internal/middleware"
	"github.com/SscSPs/financeflow/internal/utils"
	"github.com/SscSPs/financeflow/pkg/config"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	storeDriver string
	storePath   string
	format      string
	precision   int
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "ffctl",
		Short: "Inspect and maintain a FinanceFlow journal",
		Long: `ffctl reads the same journal store as the FinanceFlow server and prints
ledgers, the trial balance and the financial summary. It can also import
journal entries from a JSON file.

Store selection follows the server configuration (STORE_DRIVER, STORE_PATH,
REDIS_URL, PGSQL_URL) and can be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unsupported format %q, expected table or json", opts.format)
			}
			if opts.precision < 0 {
				return fmt.Errorf("precision cannot be negative")
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.storeDriver, "store", "", "Journal store driver (memory|file|redis|postgres), overrides STORE_DRIVER")
	flags.StringVar(&opts.storePath, "path", "", "Directory of the file store, overrides STORE_PATH")
	flags.StringVarP(&opts.format, "output", "o", formatTable, "Output format (table|json)")
	flags.IntVar(&opts.precision, "precision", utils.DefaultDisplayPrecision, "Decimal places shown for amounts")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log store and recompute details to stderr")

	rootCmd.AddCommand(
		newEntriesCmd(opts),
		newLedgersCmd(opts),
		newTrialBalanceCmd(opts),
		newSummaryCmd(opts),
		newImportCmd(opts),
		newClearCmd(opts),
	)

	return rootCmd
}

// openBook loads configuration, opens the journal store and returns a loaded book.
func openBook(cmd *cobra.Command, opts *cliOptions) (context.Context, portssvc.BookSvcFacade, func(), error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	ctx := middleware.WithLogger(cmd.Context(), logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.storeDriver != "" {
		cfg.StoreDriver = opts.storeDriver
	}
	if opts.storePath != "" {
		cfg.StorePath = opts.storePath
	}

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open journal store: %w", err)
	}

	container := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{JournalBlobs: store})
	report, err := container.Book.Load(ctx)
	if err != nil {
		closeStore()
		return nil, nil, nil, fmt.Errorf("failed to load journal: %w", err)
	}
	if report.Quarantined > 0 || report.Discarded {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d unreadable journal entries moved to %s%s\n",
			report.Quarantined, cfg.StoreKey, services.QuarantineSuffix)
	}
	return ctx, container.Book, closeStore, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
