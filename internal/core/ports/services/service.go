package services

// BookSvcFacade is everything presentation collaborators may call on the bookkeeping engine:
// the journal mutators and readers plus the read-only derived artifacts.
type BookSvcFacade interface {
	JournalSvcFacade
	LedgerReaderSvc
	ReportingService
	BookStateReaderSvc
}

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Book       BookSvcFacade
	Classifier AccountClassifier
}
