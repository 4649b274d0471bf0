package api

import (
	"net/http"

	reqdto "kuponbot/internal/handler/dto/request"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/usecase/broadcast"

	"github.com/gin-gonic/gin"
)

type BroadcastHandler struct {
	broadcaster broadcast.Broadcaster
}

func NewBroadcastHandler(broadcaster broadcast.Broadcaster) *BroadcastHandler {
	return &BroadcastHandler{broadcaster: broadcaster}
}

// @Summary Broadcast text
// @Description Send one text message to every registered customer
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BroadcastRequest true "Broadcast request"
// @Success 200 {object} resdto.BroadcastResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/admin/broadcast [post]
func (h *BroadcastHandler) Broadcast(c *gin.Context) {
	var req reqdto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.broadcaster.Broadcast(c.Request.Context(), req.Message)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBroadcastResult(res))
}

// @Summary Send a direct message
// @Description Send one text message to a single Telegram user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SendSingleRequest true "Send request"
// @Success 200 {object} resdto.SendSingleResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/admin/send-single-message [post]
func (h *BroadcastHandler) SendSingle(c *gin.Context) {
	var req reqdto.SendSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if !h.broadcaster.SendSingle(c.Request.Context(), req.TelegramID, req.Message) {
		c.JSON(http.StatusBadGateway, resdto.SendSingleResponse{Delivered: false})
		return
	}
	c.JSON(http.StatusOK, resdto.SendSingleResponse{Delivered: true})
}
