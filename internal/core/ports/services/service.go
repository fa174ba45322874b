package services

// ServiceContainer holds all service interfaces for dependency injection.
// Extractor is nil when no extraction oracle is configured; the upload route
// reports the feature as unavailable in that case.
type ServiceContainer struct {
	Intake    IntakeSvcFacade
	Rewards   RewardsReaderSvc
	History   HistorySvcFacade
	Extractor ReceiptExtractor
}
