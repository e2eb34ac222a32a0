package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultTransferListLimit = 100

// transferHandler handles bar-to-bar stock transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers all transfer-related routes. Who may accept or reject
// is decided by the service from the caller's bar assignment.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.GET("", h.listTransfers)
		transfers.POST("", h.createTransfer)
		transfers.GET("/pending", h.listPending)
		transfers.POST("/:id/accept", h.acceptTransfer)
		transfers.POST("/:id/reject", h.rejectTransfer)
	}
}

// createTransfer godoc
// @Summary Request a transfer
// @Description Requests stock from a bar, or from the store when sourceBarId is omitted.
// @Tags transfers
// @Accept json
// @Produce json
// @Param request body dto.CreateTransferRequest true "Transfer"
// @Success 201 {object} domain.BarTransfer
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transfer")
		return
	}
	logger.Info("Transfer requested", slog.String("transfer_id", transfer.TransferID), slog.String("destination_bar_id", transfer.DestinationBarID))
	c.JSON(http.StatusCreated, transfer)
}

// acceptTransfer godoc
// @Summary Accept a transfer
// @Description Moves the stock to the destination bar and completes the transfer.
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} domain.BarTransfer
// @Failure 400 {object} ErrorResponse "Insufficient stock at source"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not at the destination bar"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transfer already answered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/accept [post]
func (h *transferHandler) acceptTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	transferID := c.Param("id")
	transfer, err := h.transferService.AcceptTransfer(c.Request.Context(), transferID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to accept transfer")
		return
	}
	logger.Info("Transfer accepted", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}

// rejectTransfer godoc
// @Summary Reject a transfer
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} domain.BarTransfer
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transfer already answered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/reject [post]
func (h *transferHandler) rejectTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	transferID := c.Param("id")
	transfer, err := h.transferService.RejectTransfer(c.Request.Context(), transferID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reject transfer")
		return
	}
	logger.Info("Transfer rejected", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, transfer)
}

// listPending godoc
// @Summary List pending transfers for a bar
// @Tags transfers
// @Produce json
// @Param bar_id query string true "Destination bar ID"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/pending [get]
func (h *transferHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	barID := c.Query("bar_id")
	if _, err := uuid.Parse(barID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bar_id must be a valid UUID"})
		return
	}

	transfers, err := h.transferService.ListPendingForBar(c.Request.Context(), barID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list pending transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransfersResponse{Transfers: transfers})
}

// listTransfers godoc
// @Summary List transfers
// @Description Lists recent transfers in every status, newest first.
// @Tags transfers
// @Produce json
// @Param limit query int false "Maximum number of transfers" default(100)
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit := defaultTransferListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransfersResponse{Transfers: transfers})
}
