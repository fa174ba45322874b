package services

import (
	"context"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
	"github.com/snapbill/snapbill_backend/internal/dto"
)

// IntakeSvcFacade turns a raw extraction result into a committed,
// point-credited receipt record.
type IntakeSvcFacade interface {
	// ProcessReceipt validates the raw extraction, computes the reward and
	// credits it atomically. Returns an error wrapping apperrors.ErrValidation
	// when the input is rejected, or apperrors.ErrLedgerUnavailable when the
	// store could not commit; in both cases the ledger is untouched.
	ProcessReceipt(ctx context.Context, accountID string, raw dto.RawExtraction) (*dto.IntakeResult, error)
}

// RewardsReaderSvc defines read operations over the points ledger.
type RewardsReaderSvc interface {
	// GetBalance retrieves the running point total for an account.
	GetBalance(ctx context.Context, accountID string) (*domain.Balance, error)

	// GetReceipt retrieves a single committed receipt with its line items.
	GetReceipt(ctx context.Context, accountID string, receiptID int64) (*domain.ReceiptRecord, error)
}

// HistorySvcFacade provides read-only search over the receipt history.
type HistorySvcFacade interface {
	// QueryReceipts returns the account's receipts newest first, filtered by
	// free-text search and category. An empty result is a valid outcome, not
	// an error.
	QueryReceipts(ctx context.Context, accountID string, search string, category string) (*dto.HistoryResult, error)
}

// ReceiptExtractor is the upstream vision oracle that converts a receipt
// image into structured fields. Its output is best-effort and untrusted; it
// must always pass through validation before touching the ledger.
type ReceiptExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (dto.RawExtraction, error)
}
