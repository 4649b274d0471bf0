package api

import (
	"net/http"

	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	q queries.ProfileQueries
}

func NewUserHandler(q queries.ProfileQueries) *UserHandler {
	return &UserHandler{q: q}
}

// @Summary Get user profile
// @Description Session data with vouchers and cashback totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param telegramId path int true "Telegram user id"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/users/{telegramId} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := telegramIDParam(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Profile(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromProfile(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Bot statistics
// @Description Session counts by state and voucher counts by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Router /api/admin/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	view, err := h.q.Overview(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverview(view))
}
