package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	portsrepo "github.com/snapbill/snapbill_backend/internal/core/ports/repositories"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
	"github.com/snapbill/snapbill_backend/internal/middleware"
	"github.com/snapbill/snapbill_backend/internal/utils/rewards"
)

// intakeService orchestrates the path from raw extraction to committed credit:
// validate, compute the reward, then hand both receipt and points to the
// ledger store's atomic credit operation.
type intakeService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewIntakeService creates a new IntakeService.
func NewIntakeService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.IntakeSvcFacade {
	return &intakeService{ledgerRepo: ledgerRepo}
}

var _ portssvc.IntakeSvcFacade = (*intakeService)(nil)

// ProcessReceipt validates raw extraction output, computes the reward for the
// validated receipt and credits it. Each successful call yields exactly one
// new receipt record and one balance increment; duplicate submissions are not
// deduplicated here, so retry policy belongs to the caller.
func (s *intakeService) ProcessReceipt(ctx context.Context, accountID string, raw dto.RawExtraction) (*dto.IntakeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := ValidateExtraction(raw)
	if err != nil {
		logger.Warn("Rejected extraction during intake", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	reward := rewards.ComputeReward(receipt.Total, receipt.Category)

	record, err := s.ledgerRepo.CreditReceipt(ctx, accountID, *receipt, reward.Points)
	if err != nil {
		logger.Error("Failed to credit receipt", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerUnavailable, err)
	}

	logger.Info("Receipt credited",
		slog.String("account_id", accountID),
		slog.Int64("receipt_id", record.ReceiptID),
		slog.Int64("points_earned", reward.Points),
		slog.String("category", record.Category),
	)

	return &dto.IntakeResult{
		Receipt:      dto.ToReceiptResponse(record),
		PointsEarned: reward.Points,
		Explanation:  reward.Explanation,
	}, nil
}
