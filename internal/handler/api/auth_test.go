//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"kuponbot/internal/handler/api"
	reqdto "kuponbot/internal/handler/dto/request"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/usecase/commands"
	"kuponbot/tests/common/httptest"
	commandsmock "kuponbot/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	auth     *commandsmock.MockOperatorAuth
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.auth = commandsmock.NewMockOperatorAuth(s.mockCtrl)

	h := api.NewAuthHandler(s.auth)
	s.router.POST("/api/auth/login", h.Login)
}

const loginURL = "/api/auth/login"

func (s *AuthHandlerTestSuite) TestLogin() {
	s.Run("success", func() {
		s.auth.EXPECT().Login(gomock.Any(), "shift-lead", "secret").Return("signed.jwt.token", nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Subject: "shift-lead", Password: "secret"}, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.LoginResponse{AccessToken: "signed.jwt.token", TokenType: "Bearer"}, body)
	})

	s.Run("wrong password", func() {
		s.auth.EXPECT().Login(gomock.Any(), "shift-lead", "nope").Return("", commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Subject: "shift-lead", Password: "nope"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid credentials")
	})

	s.Run("login disabled", func() {
		s.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", commands.ErrLoginDisabled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Subject: "x", Password: "y"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "disabled")
	})

	s.Run("missing fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginURL,
			map[string]any{"subject": "x"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("unexpected failure is hidden", func() {
		s.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Subject: "x", Password: "y"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}
