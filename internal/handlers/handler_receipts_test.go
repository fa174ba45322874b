package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	"github.com/snapbill/snapbill_backend/internal/core/domain"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
	"github.com/snapbill/snapbill_backend/internal/handlers"
	"github.com/snapbill/snapbill_backend/internal/platform/config"
)

// --- Mock IntakeService ---
type MockIntakeService struct {
	mock.Mock
}

var _ portssvc.IntakeSvcFacade = (*MockIntakeService)(nil)

func (m *MockIntakeService) ProcessReceipt(ctx context.Context, accountID string, raw dto.RawExtraction) (*dto.IntakeResult, error) {
	args := m.Called(ctx, accountID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IntakeResult), args.Error(1)
}

// --- Mock RewardsService ---
type MockRewardsService struct {
	mock.Mock
}

var _ portssvc.RewardsReaderSvc = (*MockRewardsService)(nil)

func (m *MockRewardsService) GetBalance(ctx context.Context, accountID string) (*domain.Balance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockRewardsService) GetReceipt(ctx context.Context, accountID string, receiptID int64) (*domain.ReceiptRecord, error) {
	args := m.Called(ctx, accountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptRecord), args.Error(1)
}

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

func (m *MockHistoryService) QueryReceipts(ctx context.Context, accountID string, search string, category string) (*dto.HistoryResult, error) {
	args := m.Called(ctx, accountID, search, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HistoryResult), args.Error(1)
}

func setupTestRouter(intake *MockIntakeService, rewards *MockRewardsService, history *MockHistoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{DefaultAccountID: "primary", MaxUploadBytes: 1 << 20}
	services := &portssvc.ServiceContainer{Intake: intake, Rewards: rewards, History: history}
	handlers.RegisterRoutes(r, cfg, services)
	return r
}

func TestIntakeReceipt_Success(t *testing.T) {
	intake := new(MockIntakeService)
	router := setupTestRouter(intake, new(MockRewardsService), new(MockHistoryService))

	result := &dto.IntakeResult{
		Receipt: dto.ReceiptResponse{
			ReceiptID:    1,
			AccountID:    "primary",
			Merchant:     "Fresh Mart",
			Date:         "2025-11-02",
			Total:        decimal.NewFromInt(250),
			Category:     domain.CategoryGrocery,
			PointsEarned: 7,
			CreatedAt:    time.Now().UTC(),
		},
		PointsEarned: 7,
		Explanation:  "Base: 2 pts (₹100 = 1pt). Bonus: +5 pts (Grocery Tier).",
	}
	intake.On("ProcessReceipt", mock.Anything, "primary", mock.AnythingOfType("dto.RawExtraction")).Return(result, nil).Once()

	body := bytes.NewBufferString(`{"rawMerchant":"Fresh Mart","date":"2025-11-02","total":250,"category":"Supermarket / Grocery"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got dto.IntakeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.PointsEarned)
	assert.Equal(t, "Fresh Mart", got.Receipt.Merchant)
	assert.Contains(t, got.Explanation, "Grocery Tier")
	intake.AssertExpectations(t)
}

func TestIntakeReceipt_ValidationErrorIsBadRequest(t *testing.T) {
	intake := new(MockIntakeService)
	router := setupTestRouter(intake, new(MockRewardsService), new(MockHistoryService))

	intake.On("ProcessReceipt", mock.Anything, "primary", mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", bytes.NewBufferString(`{"total":-5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntakeReceipt_LedgerFailureIsServiceUnavailable(t *testing.T) {
	intake := new(MockIntakeService)
	router := setupTestRouter(intake, new(MockRewardsService), new(MockHistoryService))

	intake.On("ProcessReceipt", mock.Anything, "primary", mock.Anything).
		Return(nil, apperrors.ErrLedgerUnavailable).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", bytes.NewBufferString(`{"total":100}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadReceipt_UnconfiguredExtractorIsServiceUnavailable(t *testing.T) {
	router := setupTestRouter(new(MockIntakeService), new(MockRewardsService), new(MockHistoryService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListReceipts_PassesFilters(t *testing.T) {
	history := new(MockHistoryService)
	router := setupTestRouter(new(MockIntakeService), new(MockRewardsService), history)

	history.On("QueryReceipts", mock.Anything, "primary", "unknown", "all").
		Return(&dto.HistoryResult{History: []dto.ReceiptResponse{}, TotalCount: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts?q=unknown&category=all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got dto.HistoryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.History)
	assert.Equal(t, int64(3), got.TotalCount)
	history.AssertExpectations(t)
}

func TestGetReceipt_NotFound(t *testing.T) {
	rewards := new(MockRewardsService)
	router := setupTestRouter(new(MockIntakeService), rewards, new(MockHistoryService))

	rewards.On("GetReceipt", mock.Anything, "primary", int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReceipt_InvalidIDIsBadRequest(t *testing.T) {
	router := setupTestRouter(new(MockIntakeService), new(MockRewardsService), new(MockHistoryService))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBalance(t *testing.T) {
	rewards := new(MockRewardsService)
	router := setupTestRouter(new(MockIntakeService), rewards, new(MockHistoryService))

	rewards.On("GetBalance", mock.Anything, "primary").
		Return(&domain.Balance{AccountID: "primary", TotalPoints: 19}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got dto.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(19), got.TotalPoints)
	rewards.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(new(MockIntakeService), new(MockRewardsService), new(MockHistoryService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
