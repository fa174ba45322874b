package services

import (
	"context"

	"github.com/snapbill/snapbill_backend/internal/core/domain"
	portsrepo "github.com/snapbill/snapbill_backend/internal/core/ports/repositories"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
)

// rewardsService exposes the read side of the points ledger.
type rewardsService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewRewardsService creates a new RewardsService.
func NewRewardsService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.RewardsReaderSvc {
	return &rewardsService{ledgerRepo: ledgerRepo}
}

var _ portssvc.RewardsReaderSvc = (*rewardsService)(nil)

// GetBalance retrieves the running point total for an account. Accounts that
// have never been credited report a zero balance.
func (s *rewardsService) GetBalance(ctx context.Context, accountID string) (*domain.Balance, error) {
	return s.ledgerRepo.FindBalance(ctx, accountID)
}

// GetReceipt retrieves a single committed receipt with its line items.
func (s *rewardsService) GetReceipt(ctx context.Context, accountID string, receiptID int64) (*domain.ReceiptRecord, error) {
	return s.ledgerRepo.FindReceiptByID(ctx, accountID, receiptID)
}
