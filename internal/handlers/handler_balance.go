package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
	"github.com/snapbill/snapbill_backend/internal/middleware"
)

// balanceHandler handles HTTP requests for the running point balance.
type balanceHandler struct {
	rewardsService portssvc.RewardsReaderSvc
	accountID      string
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(rewardsService portssvc.RewardsReaderSvc, accountID string) *balanceHandler {
	return &balanceHandler{rewardsService: rewardsService, accountID: accountID}
}

// registerBalanceRoutes registers routes related to the point balance.
func registerBalanceRoutes(rg *gin.RouterGroup, rewardsService portssvc.RewardsReaderSvc, accountID string) {
	h := newBalanceHandler(rewardsService, accountID)
	rg.GET("/balance", h.getBalance)
}

// getBalance godoc
// @Summary Get the running point balance
// @Description Retrieves the account's total points; zero for accounts never credited
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Router /balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.rewardsService.GetBalance(c.Request.Context(), h.accountID)
	if err != nil {
		logger.Error("Failed to retrieve balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
