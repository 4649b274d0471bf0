package api

import (
	"net/http"

	"kuponbot/internal/domain/voucher"
	reqdto "kuponbot/internal/handler/dto/request"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	cmds commands.VoucherCommands
}

func NewVoucherHandler(cmds commands.VoucherCommands) *VoucherHandler {
	return &VoucherHandler{cmds: cmds}
}

// @Summary Create voucher
// @Description Issue a voucher to a Telegram user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVoucherRequest true "Create voucher request"
// @Success 201 {object} resdto.VoucherResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	var req reqdto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	v, err := h.cmds.Create(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, v)
}

// @Summary Redeem voucher
// @Description Mark an active voucher as used
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param code path string true "Voucher code"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/vouchers/{code}/redeem [post]
func (h *VoucherHandler) Redeem(c *gin.Context) {
	v, err := h.cmds.Redeem(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, v)
}

func (h *VoucherHandler) respond(c *gin.Context, status int, v *voucher.Voucher) {
	res, err := resdto.FromVoucher(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(status, res)
}
