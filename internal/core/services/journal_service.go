package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/core/domain"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/utils/accounting"
)

// DefaultStorageKey is the blob store slot holding the serialized journal.
const DefaultStorageKey = "financeflow_journal_entries"

// QuarantineSuffix is appended to the storage key to name the slot holding entries that
// could not be loaded.
const QuarantineSuffix = "_quarantine"

var ErrEntryIDMissing = errors.New("journal entry id is required")

// RecomputeObserver is notified after every rebuild of the derived artifacts.
type RecomputeObserver interface {
	ObserveRecompute(stats domain.RecomputeStats)
}

// bookService owns the journal and everything derived from it.
// A single lock spans each mutate, rebuild and persist sequence.
type bookService struct {
	BaseService

	mu         sync.RWMutex
	store      portsrepo.BlobStore
	storageKey string
	classifier portssvc.AccountClassifier
	clock      func() time.Time
	newID      func() string
	observer   RecomputeObserver

	entries  []domain.JournalEntry
	snapshot domain.Snapshot
	state    domain.BookState
}

// BookServiceOption is a functional option for configuring the book service
type BookServiceOption func(*bookService)

// WithClassifier replaces the default keyword classifier.
func WithClassifier(classifier portssvc.AccountClassifier) BookServiceOption {
	return func(s *bookService) {
		if classifier != nil {
			s.classifier = classifier
		}
	}
}

// WithStorageKey sets the blob store slot used for the journal.
func WithStorageKey(key string) BookServiceOption {
	return func(s *bookService) {
		if key != "" {
			s.storageKey = key
		}
	}
}

// WithClock sets the time source for createdAt stamps and snapshots.
func WithClock(clock func() time.Time) BookServiceOption {
	return func(s *bookService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator sets the generator for missing entry ids.
func WithIDGenerator(newID func() string) BookServiceOption {
	return func(s *bookService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithRecomputeObserver registers an observer for rebuild statistics.
func WithRecomputeObserver(observer RecomputeObserver) BookServiceOption {
	return func(s *bookService) {
		s.observer = observer
	}
}

// NewBookService creates a book over an empty journal. Call Load to read the persisted journal.
// A nil store keeps the journal in memory only.
func NewBookService(store portsrepo.BlobStore, options ...BookServiceOption) portssvc.BookSvcFacade {
	svc := &bookService{
		store:      store,
		storageKey: DefaultStorageKey,
		classifier: NewKeywordClassifier(),
		clock:      time.Now,
		newID:      uuid.NewString,
		entries:    []domain.JournalEntry{},
	}

	for _, option := range options {
		option(svc)
	}

	svc.rebuild(context.Background())
	return svc
}

// Load replaces the in-memory journal with the persisted one.
// A missing slot yields an empty journal. Read failures degrade to an empty journal and are
// returned wrapped in ErrPersistence. Malformed content and entries that fail to decode or
// validate are moved to the quarantine slot. Missing ids and creation times are stamped and
// written back so they stay stable across restarts.
func (s *bookService) Load(ctx context.Context) (domain.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report domain.LoadReport
	s.entries = []domain.JournalEntry{}
	if s.store == nil {
		s.rebuild(ctx)
		return report, nil
	}

	data, err := s.store.Load(ctx, s.storageKey)
	if err != nil {
		defer s.rebuild(ctx)
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "No persisted journal found, starting empty", slog.String("key", s.storageKey))
			return report, nil
		}
		s.LogError(ctx, err, "Failed to load persisted journal, starting empty", slog.String("key", s.storageKey))
		return report, fmt.Errorf("%w: loading journal: %w", apperrors.ErrPersistence, err)
	}

	raw, err := splitJournal(data)
	if err != nil {
		defer s.rebuild(ctx)
		s.LogWarn(ctx, "Persisted journal is malformed, discarding it",
			slog.String("key", s.storageKey),
			slog.String("error", err.Error()))
		report.Discarded = true
		if qErr := s.quarantine(ctx, []json.RawMessage{quoteRaw(data)}); qErr != nil {
			s.LogError(ctx, qErr, "Failed to quarantine malformed journal, leaving it in place", slog.String("key", s.storageKey))
			return report, fmt.Errorf("%w: quarantining journal: %w", apperrors.ErrPersistence, qErr)
		}
		if delErr := s.store.Delete(ctx, s.storageKey); delErr != nil {
			s.LogError(ctx, delErr, "Failed to delete malformed journal", slog.String("key", s.storageKey))
		}
		return report, nil
	}

	var dropped []json.RawMessage
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		var entry domain.JournalEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			s.LogWarn(ctx, "Skipping undecodable journal entry", slog.Int("index", i), slog.String("error", err.Error()))
			dropped = append(dropped, item)
			continue
		}
		needsStamp := entry.ID == "" || entry.CreatedAt.IsZero()
		s.stamp(&entry)
		if err := accounting.ValidateJournalEntry(entry); err != nil {
			s.LogWarn(ctx, "Skipping invalid journal entry",
				slog.Int("index", i),
				slog.String("entry_id", entry.ID),
				slog.String("error", err.Error()))
			dropped = append(dropped, item)
			continue
		}
		if _, dup := seen[entry.ID]; dup {
			s.LogWarn(ctx, "Skipping duplicate journal entry", slog.Int("index", i), slog.String("entry_id", entry.ID))
			dropped = append(dropped, item)
			continue
		}
		seen[entry.ID] = struct{}{}
		s.entries = append(s.entries, entry)
		if needsStamp {
			report.Stamped++
		}
	}

	s.rebuild(ctx)
	report.Loaded = len(s.entries)
	report.Quarantined = len(dropped)
	s.LogInfo(ctx, "Journal loaded",
		slog.String("key", s.storageKey),
		slog.Int("entries", report.Loaded),
		slog.Int("stamped", report.Stamped),
		slog.Int("quarantined", report.Quarantined))

	if len(dropped) > 0 {
		// The main slot is only rewritten once the dropped entries are safe.
		if err := s.quarantine(ctx, dropped); err != nil {
			s.LogError(ctx, err, "Failed to quarantine skipped journal entries", slog.String("key", s.quarantineKey()))
			return report, fmt.Errorf("%w: quarantining entries: %w", apperrors.ErrPersistence, err)
		}
		s.LogWarn(ctx, "Moved skipped journal entries to quarantine",
			slog.String("key", s.quarantineKey()),
			slog.Int("count", len(dropped)))
	}
	if report.Stamped > 0 || len(dropped) > 0 {
		if err := s.persist(ctx); err != nil {
			return report, err
		}
	}
	return report, nil
}

// AddEntry validates the entry and appends it to the journal.
func (s *bookService) AddEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	entry = entry.Clone()
	s.stamp(&entry)

	if err := accounting.ValidateJournalEntry(entry); err != nil {
		s.LogWarn(ctx, "Rejected journal entry", slog.String("entry_id", entry.ID), slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ID) >= 0 {
		err := fmt.Errorf("%w: %w: journal entry %s", apperrors.ErrValidation, apperrors.ErrDuplicate, entry.ID)
		s.LogWarn(ctx, "Rejected duplicate journal entry", slog.String("entry_id", entry.ID))
		return nil, err
	}

	s.state = domain.StateStale
	s.entries = append(s.entries, entry)
	s.rebuild(ctx)

	s.LogInfo(ctx, "Journal entry added",
		slog.String("entry_id", entry.ID),
		slog.Int("transactions", len(entry.Transactions)))

	stored := entry.Clone()
	return &stored, s.persist(ctx)
}

// UpdateEntry replaces the entry with the same ID. The stored createdAt is kept.
func (s *bookService) UpdateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if entry.ID == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryIDMissing)
	}
	entry = entry.Clone()

	if err := accounting.ValidateJournalEntry(entry); err != nil {
		s.LogWarn(ctx, "Rejected journal entry update", slog.String("entry_id", entry.ID), slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(entry.ID)
	if idx < 0 {
		s.LogWarn(ctx, "Journal entry to update not found", slog.String("entry_id", entry.ID))
		return nil, fmt.Errorf("journal entry %s: %w", entry.ID, apperrors.ErrNotFound)
	}

	entry.CreatedAt = s.entries[idx].CreatedAt
	s.state = domain.StateStale
	s.entries[idx] = entry
	s.rebuild(ctx)

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entry.ID))

	stored := entry.Clone()
	return &stored, s.persist(ctx)
}

// RemoveEntry deletes an entry by ID.
func (s *bookService) RemoveEntry(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(entryID)
	if idx < 0 {
		s.LogWarn(ctx, "Journal entry to remove not found", slog.String("entry_id", entryID))
		return fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}

	s.state = domain.StateStale
	s.entries = slices.Delete(s.entries, idx, idx+1)
	s.rebuild(ctx)

	s.LogInfo(ctx, "Journal entry removed", slog.String("entry_id", entryID))
	return s.persist(ctx)
}

// Clear empties the journal and deletes the persisted slot.
func (s *bookService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.entries)
	s.state = domain.StateStale
	s.entries = []domain.JournalEntry{}
	s.rebuild(ctx)

	s.LogInfo(ctx, "Journal cleared", slog.Int("removed", removed))

	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, s.storageKey); err != nil {
		s.LogError(ctx, err, "Failed to delete persisted journal", slog.String("key", s.storageKey))
		return fmt.Errorf("%w: deleting journal: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

// ListEntries returns a copy of the journal in log order.
func (s *bookService) ListEntries(ctx context.Context) []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneEntries(s.entries)
}

// GetEntry returns a copy of one entry.
func (s *bookService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(entryID)
	if idx < 0 {
		return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	entry := s.entries[idx].Clone()
	return &entry, nil
}

// Ledgers returns copies of all ledgers in first-appearance order.
func (s *bookService) Ledgers(ctx context.Context) []domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Ledgers.Ledgers()
}

// Ledger returns a copy of one account's ledger.
func (s *bookService) Ledger(ctx context.Context, accountName string) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.snapshot.Ledgers.Get(accountName)
	if !ok {
		return nil, fmt.Errorf("ledger for account %q: %w", accountName, apperrors.ErrNotFound)
	}
	out := l.Clone()
	return &out, nil
}

func (s *bookService) TrialBalance(ctx context.Context) domain.TrialBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tb := s.snapshot.TrialBalance
	tb.Rows = slices.Clone(tb.Rows)
	return tb
}

func (s *bookService) FinancialSummary(ctx context.Context) domain.FinancialSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.FinancialSummary
}

func (s *bookService) Dashboard(ctx context.Context, recent int) domain.DashboardReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildDashboard(s.snapshot.FinancialSummary, s.entries, recent, s.clock().UTC())
}

func (s *bookService) ClassificationGaps(ctx context.Context) []domain.ClassificationGap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot.ClassificationGaps)
}

func (s *bookService) State(ctx context.Context) domain.BookState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a deep copy of the journal and all derived artifacts.
func (s *bookService) Snapshot(ctx context.Context) domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// stamp assigns an id and creation time to entries that lack them.
func (s *bookService) stamp(entry *domain.JournalEntry) {
	if entry.ID == "" {
		entry.ID = s.newID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock().UTC()
	}
}

// indexOf must be called with the lock held.
func (s *bookService) indexOf(entryID string) int {
	return slices.IndexFunc(s.entries, func(e domain.JournalEntry) bool {
		return e.ID == entryID
	})
}

// rebuild derives ledgers, trial balance and summary from scratch. Must be called with the write lock held.
func (s *bookService) rebuild(ctx context.Context) {
	s.state = domain.StateStale
	started := time.Now()

	ledgers, gaps := BuildLedgers(s.entries, s.classifier)
	trialBalance := GenerateTrialBalance(ledgers)
	summary := CalculateFinancialSummary(ledgers)

	s.snapshot = domain.Snapshot{
		Version:            s.snapshot.Version + 1,
		RebuiltAt:          s.clock().UTC(),
		JournalEntries:     domain.CloneEntries(s.entries),
		Ledgers:            ledgers,
		TrialBalance:       trialBalance,
		FinancialSummary:   summary,
		ClassificationGaps: gaps,
	}
	s.state = domain.StateConsistent

	postings := 0
	for _, e := range s.entries {
		postings += len(e.Transactions)
	}

	if len(gaps) > 0 {
		names := make([]string, len(gaps))
		for i, g := range gaps {
			names[i] = g.AccountName
		}
		s.LogWarn(ctx, "Accounts matched no classification rule",
			slog.Any("accounts", names),
			slog.String("defaulted_to", string(DefaultAccountType)))
	}
	if !trialBalance.IsBalanced() {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("total_debit", trialBalance.TotalDebit.String()),
			slog.String("total_credit", trialBalance.TotalCredit.String()))
	}

	stats := domain.RecomputeStats{
		Entries:            len(s.entries),
		Postings:           postings,
		Accounts:           ledgers.Len(),
		ClassificationGaps: len(gaps),
		Duration:           time.Since(started),
		Balanced:           trialBalance.IsBalanced(),
	}
	s.LogDebug(ctx, "Derived artifacts rebuilt",
		slog.Uint64("version", s.snapshot.Version),
		slog.Int("entries", stats.Entries),
		slog.Int("accounts", stats.Accounts),
		slog.Duration("duration", stats.Duration))

	if s.observer != nil {
		s.observer.ObserveRecompute(stats)
	}
}

func (s *bookService) quarantineKey() string {
	return s.storageKey + QuarantineSuffix
}

// quarantine appends items to the quarantine slot.
func (s *bookService) quarantine(ctx context.Context, items []json.RawMessage) error {
	key := s.quarantineKey()
	existing, err := s.store.Load(ctx, key)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	kept, splitErr := splitJournal(existing)
	if splitErr != nil {
		kept = []json.RawMessage{quoteRaw(existing)}
	}
	data, err := json.Marshal(append(kept, items...))
	if err != nil {
		return err
	}
	return s.store.Save(ctx, key, data)
}

// persist writes the journal to the blob store. Must be called with the write lock held.
func (s *bookService) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	data, err := encodeJournal(s.entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode journal")
		return fmt.Errorf("%w: encoding journal: %w", apperrors.ErrPersistence, err)
	}
	if err := s.store.Save(ctx, s.storageKey, data); err != nil {
		s.LogError(ctx, err, "Failed to save journal, in-memory state kept", slog.String("key", s.storageKey))
		return fmt.Errorf("%w: saving journal: %w", apperrors.ErrPersistence, err)
	}
	return nil
}
