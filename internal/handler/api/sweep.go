package api

import (
	"net/http"

	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/usecase/scheduler"

	"github.com/gin-gonic/gin"
)

type SweepHandler struct {
	sweeps scheduler.SweepRunner
}

func NewSweepHandler(sweeps scheduler.SweepRunner) *SweepHandler {
	return &SweepHandler{sweeps: sweeps}
}

// @Summary Run a sweep
// @Description Run one scheduled sweep immediately (followup, anniversary, birthday-reminder, birthday-vouchers, voucher-reminders)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Sweep name"
// @Success 200 {object} resdto.SweepResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/sweeps/{name} [post]
func (h *SweepHandler) Run(c *gin.Context) {
	rep, err := h.sweeps.Run(c.Request.Context(), c.Param("name"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReport(rep))
}
