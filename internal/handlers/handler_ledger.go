package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/dto"
	"github.com/SscSPs/financeflow/internal/middleware"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerReaderSvc
}

func newLedgerHandler(ledgerService portssvc.LedgerReaderSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// RegisterLedgerRoutes registers the read-only ledger routes
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:accountName", h.getLedger)
	}
}

// listLedgers godoc
// @Summary List account ledgers
// @Description Returns every account ledger in the order accounts first appear in the journal
// @Tags ledgers
// @Produce json
// @Success 200 {array} dto.LedgerResponse
// @Security BearerAuth
// @Router /ledgers [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToLedgerResponses(h.ledgerService.Ledgers(c.Request.Context())))
}

// getLedger godoc
// @Summary Get an account ledger
// @Tags ledgers
// @Produce json
// @Param accountName path string true "Account name (URL encoded)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /ledgers/{accountName} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	accountName := c.Param("accountName")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account", accountName))

	ledger, err := h.ledgerService.Ledger(c.Request.Context(), accountName)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
