package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	"github.com/snapbill/snapbill_backend/internal/core/services"
)

func TestRewardsService_GetBalance(t *testing.T) {
	mockRepo := new(MockLedgerRepository)
	svc := services.NewRewardsService(mockRepo)

	mockRepo.On("FindBalance", mock.Anything, testAccountID).
		Return(&domain.Balance{AccountID: testAccountID, TotalPoints: 42}, nil)

	balance, err := svc.GetBalance(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.TotalPoints)

	// Reading twice with no intervening credit yields identical results
	again, err := svc.GetBalance(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Equal(t, balance, again)
}

func TestRewardsService_GetBalance_NeverCreditedAccountIsZero(t *testing.T) {
	mockRepo := new(MockLedgerRepository)
	svc := services.NewRewardsService(mockRepo)

	mockRepo.On("FindBalance", mock.Anything, "fresh").
		Return(&domain.Balance{AccountID: "fresh"}, nil).Once()

	balance, err := svc.GetBalance(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Zero(t, balance.TotalPoints)
}

func TestRewardsService_GetReceipt_NotFound(t *testing.T) {
	mockRepo := new(MockLedgerRepository)
	svc := services.NewRewardsService(mockRepo)

	mockRepo.On("FindReceiptByID", mock.Anything, testAccountID, int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	record, err := svc.GetReceipt(context.Background(), testAccountID, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, record)
}
