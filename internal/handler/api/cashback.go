package api

import (
	"context"
	"net/http"

	"kuponbot/internal/domain/cashback"
	reqdto "kuponbot/internal/handler/dto/request"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type CashbackHandler struct {
	cmds commands.CashbackCommands
}

func NewCashbackHandler(cmds commands.CashbackCommands) *CashbackHandler {
	return &CashbackHandler{cmds: cmds}
}

type cashbackOp func(ctx context.Context, ownerID, amount int64, description string) (*commands.CashbackResult, error)

// @Summary Record purchase
// @Description Credit cashback for a purchase amount at the configured percentage
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param telegramId path int true "Telegram user id"
// @Param request body reqdto.CashbackRequest true "Purchase"
// @Success 201 {object} resdto.CashbackResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/cashback/{telegramId}/purchase [post]
func (h *CashbackHandler) Purchase(c *gin.Context) {
	h.apply(c, h.cmds.AddPurchase)
}

// @Summary Spend cashback
// @Description Debit cashback; fails when the balance is insufficient
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param telegramId path int true "Telegram user id"
// @Param request body reqdto.CashbackRequest true "Amount to spend"
// @Success 201 {object} resdto.CashbackResultResponse
// @Failure 409 {object} httperr.Response
// @Router /api/admin/cashback/{telegramId}/use [post]
func (h *CashbackHandler) Use(c *gin.Context) {
	h.apply(c, h.cmds.Use)
}

// @Summary Refund cashback
// @Description Return a previously spent amount to the balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param telegramId path int true "Telegram user id"
// @Param request body reqdto.CashbackRequest true "Amount to refund"
// @Success 201 {object} resdto.CashbackResultResponse
// @Router /api/admin/cashback/{telegramId}/refund [post]
func (h *CashbackHandler) Refund(c *gin.Context) {
	h.apply(c, h.cmds.Refund)
}

func (h *CashbackHandler) apply(c *gin.Context, op cashbackOp) {
	id, err := telegramIDParam(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	var req reqdto.CashbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := op(c.Request.Context(), id, req.Amount, req.Description)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromCashbackResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Cashback history
// @Description Ledger entries, newest first, with replayed totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param telegramId path int true "Telegram user id"
// @Success 200 {object} resdto.CashbackHistoryResponse
// @Failure 404 {object} httperr.Response
// @Router /api/admin/cashback/{telegramId} [get]
func (h *CashbackHandler) History(c *gin.Context) {
	id, err := telegramIDParam(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var (
		entries []*cashback.Entry
		stats   cashback.Stats
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		entries, err = h.cmds.History(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = h.cmds.Stats(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromCashbackHistory(entries, stats)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
