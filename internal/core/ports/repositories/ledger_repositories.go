package repositories

import (
	"context"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
)

// LedgerReader defines read operations over the points ledger.
type LedgerReader interface {
	// FindBalance retrieves the running balance for an account. Accounts are
	// created lazily, so a missing row is returned as a zero balance rather
	// than an error.
	FindBalance(ctx context.Context, accountID string) (*domain.Balance, error)

	// ListReceipts retrieves every receipt for an account, newest first,
	// without line items.
	ListReceipts(ctx context.Context, accountID string) ([]domain.ReceiptRecord, error)

	// CountReceipts returns the total number of receipts for an account.
	CountReceipts(ctx context.Context, accountID string) (int64, error)

	// FindReceiptByID retrieves a single receipt with its line items.
	// Returns apperrors.ErrNotFound when no such receipt exists.
	FindReceiptByID(ctx context.Context, accountID string, receiptID int64) (*domain.ReceiptRecord, error)
}

// LedgerWriter defines the single write operation on the points ledger.
type LedgerWriter interface {
	// CreditReceipt inserts a new receipt record with its line items and
	// increments the account balance by points, all within one transaction.
	// Either both the record and the increment commit, or neither does.
	CreditReceipt(ctx context.Context, accountID string, receipt domain.ValidatedReceipt, points int64) (*domain.ReceiptRecord, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
// This is a facade for clients that need access to all operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
