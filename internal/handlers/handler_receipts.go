package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
	"github.com/snapbill/snapbill_backend/internal/middleware"
)

// receiptHandler handles HTTP requests for receipt intake and reads.
type receiptHandler struct {
	intakeService  portssvc.IntakeSvcFacade
	rewardsService portssvc.RewardsReaderSvc
	historyService portssvc.HistorySvcFacade
	extractor      portssvc.ReceiptExtractor
	accountID      string
	maxUploadBytes int64
}

// newReceiptHandler creates a new receiptHandler.
func newReceiptHandler(services *portssvc.ServiceContainer, accountID string, maxUploadBytes int64) *receiptHandler {
	return &receiptHandler{
		intakeService:  services.Intake,
		rewardsService: services.Rewards,
		historyService: services.History,
		extractor:      services.Extractor,
		accountID:      accountID,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerReceiptRoutes registers routes related to receipts.
// uploadMiddleware is applied only to the image upload route.
func registerReceiptRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, accountID string, maxUploadBytes int64, uploadMiddleware ...gin.HandlerFunc) {
	h := newReceiptHandler(services, accountID, maxUploadBytes)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.intakeReceipt)
		receipts.POST("/upload", append(uploadMiddleware, h.uploadReceipt)...)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:receiptID", h.getReceipt)
	}
}

// intakeReceipt godoc
// @Summary Credit a pre-extracted receipt
// @Description Validates an extraction result, computes the reward and credits it atomically
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   extraction body dto.RawExtraction true "Raw extraction result"
// @Success 201 {object} dto.IntakeResult
// @Failure 400 {object} map[string]string "Extraction rejected by validation"
// @Failure 503 {object} map[string]string "Ledger could not commit"
// @Router /receipts [post]
func (h *receiptHandler) intakeReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var raw dto.RawExtraction
	if err := c.ShouldBindJSON(&raw); err != nil {
		logger.Warn("Failed to bind JSON for receipt intake", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.processIntake(c, raw)
}

// uploadReceipt godoc
// @Summary Upload a receipt image
// @Description Extracts receipt fields from the image via the vision oracle, then credits the reward
// @Tags receipts
// @Accept  multipart/form-data
// @Produce  json
// @Param   receipt formData file true "Receipt image"
// @Success 201 {object} dto.IntakeResult
// @Failure 400 {object} map[string]string "No file, or extraction rejected by validation"
// @Failure 502 {object} map[string]string "Extraction oracle failed"
// @Failure 503 {object} map[string]string "Extraction not configured, or ledger could not commit"
// @Router /receipts/upload [post]
func (h *receiptHandler) uploadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Receipt image extraction is not configured"})
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		logger.Warn("Receipt upload without file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	logger.Info("Processing receipt image", slog.String("filename", fileHeader.Filename), slog.Int64("size_bytes", fileHeader.Size))

	raw, err := h.extractor.Extract(c.Request.Context(), image, mimeType)
	if err != nil {
		logger.Error("Extraction oracle failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to extract receipt data from image"})
		return
	}

	h.processIntake(c, raw)
}

// processIntake runs the validated-intake path shared by both intake routes.
func (h *receiptHandler) processIntake(c *gin.Context, raw dto.RawExtraction) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.intakeService.ProcessReceipt(c.Request.Context(), h.accountID, raw)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Extraction rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrLedgerUnavailable) {
			logger.Error("Ledger could not commit intake", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to record receipt"})
		} else {
			logger.Error("Failed to process receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process receipt"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// listReceipts godoc
// @Summary List receipt history
// @Description Returns the account's receipts newest first, filtered by free-text search and category
// @Tags receipts
// @Produce  json
// @Param   q query string false "Case-insensitive substring matched against date, merchant and category"
// @Param   category query string false "Category filter; 'all' or empty matches everything"
// @Success 200 {object} dto.HistoryResult
// @Failure 500 {object} map[string]string "Failed to query history"
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.historyService.QueryReceipts(c.Request.Context(), h.accountID, c.Query("q"), c.Query("category"))
	if err != nil {
		logger.Error("Failed to query receipt history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getReceipt godoc
// @Summary Get a single receipt
// @Description Retrieves a committed receipt with its line items
// @Tags receipts
// @Produce  json
// @Param   receiptID path int true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid receipt ID"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to retrieve receipt"
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receiptID, err := strconv.ParseInt(c.Param("receiptID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receipt ID"})
		return
	}

	record, err := h.rewardsService.GetReceipt(c.Request.Context(), h.accountID, receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else {
			logger.Error("Failed to retrieve receipt", slog.Int64("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(record))
}
