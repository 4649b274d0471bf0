package api

import (
	"net/http"

	reqdto "kuponbot/internal/handler/dto/request"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/handler/httperr"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth commands.OperatorAuth
}

func NewAuthHandler(auth commands.OperatorAuth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// @Summary Operator login
// @Description Exchange the operator password for an admin bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Subject, req.Password)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
			return
		}
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{AccessToken: token, TokenType: "Bearer"})
}
