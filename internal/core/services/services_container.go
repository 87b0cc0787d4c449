package services

import (
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...BookServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{
		Classifier: NewKeywordClassifier(),
	}

	bookOptions := []BookServiceOption{
		WithClassifier(container.Classifier),
		WithStorageKey(cfg.StoreKey),
	}
	bookOptions = append(bookOptions, options...)

	container.Book = NewBookService(repos.JournalBlobs, bookOptions...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.BookSvcFacade     = (*bookService)(nil)
	_ portssvc.AccountClassifier = (*keywordClassifier)(nil)
)
