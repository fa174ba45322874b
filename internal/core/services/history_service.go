package services

import (
	"context"
	"strings"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
	portsrepo "github.com/snapbill/snapbill_backend/internal/core/ports/repositories"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
)

// historyService provides read-only search over the receipt history.
type historyService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{ledgerRepo: ledgerRepo}
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// QueryReceipts returns the account's receipts newest first, filtered by
// free-text search and category. The two filters apply conjunctively. The
// result's TotalCount carries the unfiltered receipt count so callers can
// distinguish an empty ledger from a filter matching nothing.
func (s *historyService) QueryReceipts(ctx context.Context, accountID string, search string, category string) (*dto.HistoryResult, error) {
	records, err := s.ledgerRepo.ListReceipts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, err := s.ledgerRepo.CountReceipts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.ReceiptRecord, 0, len(records))
	for _, record := range records {
		if matchesSearch(record, search) && matchesCategory(record, category) {
			matched = append(matched, record)
		}
	}

	return &dto.HistoryResult{
		History:    dto.ToReceiptResponseSlice(matched),
		TotalCount: total,
	}, nil
}

// matchesSearch reports whether the search text appears in the record's date
// label, merchant or category, case-insensitively. Empty search matches all.
func matchesSearch(record domain.ReceiptRecord, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(record.DateLabel), search) ||
		strings.Contains(strings.ToLower(record.Merchant), search) ||
		strings.Contains(strings.ToLower(record.Category), search)
}

// matchesCategory reports whether the record's category contains the filter,
// case-insensitively. "all" or an empty filter matches everything.
func matchesCategory(record domain.ReceiptRecord, category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == "all" {
		return true
	}
	return strings.Contains(strings.ToLower(record.Category), category)
}
