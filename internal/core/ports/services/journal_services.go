package services

import (
	"context"

	"github.com/SscSPs/financeflow/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// ListEntries returns the journal in log order.
	ListEntries(ctx context.Context) []domain.JournalEntry

	// GetEntry retrieves a specific journal entry by its ID.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data.
// Every mutation rebuilds the derived artifacts before it returns. A returned error that
// wraps apperrors.ErrPersistence means the mutation was applied in memory but not saved.
type JournalWriterSvc interface {
	// AddEntry validates and appends an entry, assigning an ID and creation time if absent.
	AddEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// UpdateEntry replaces the entry with the same ID.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// RemoveEntry deletes an entry by ID.
	RemoveEntry(ctx context.Context, entryID string) error

	// Clear empties the journal and its persisted slot.
	Clear(ctx context.Context) error
}

// JournalLoaderSvc defines the read-on-init step against the external store.
type JournalLoaderSvc interface {
	// Load replaces the in-memory journal with the persisted one. Entries that cannot be
	// loaded are moved to a quarantine slot rather than dropped.
	Load(ctx context.Context) (domain.LoadReport, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLoaderSvc
}
