//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/handler/api"
	resdto "kuponbot/internal/handler/dto/response"
	"kuponbot/internal/pkg/errs"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/queries"
	"kuponbot/internal/usecase/scheduler"
	"kuponbot/tests/common/builder"
	"kuponbot/tests/common/httptest"
	"kuponbot/tests/common/testutil"
	broadcastmock "kuponbot/tests/mock/broadcast"
	commandsmock "kuponbot/tests/mock/commands"
	queriesmock "kuponbot/tests/mock/queries"
	schedulermock "kuponbot/tests/mock/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	broadcaster *broadcastmock.MockBroadcaster
	sweeps      *schedulermock.MockSweepRunner
	profiles    *queriesmock.MockProfileQueries
	vouchers    *commandsmock.MockVoucherCommands
	cashback    *commandsmock.MockCashbackCommands
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.broadcaster = broadcastmock.NewMockBroadcaster(s.mockCtrl)
	s.sweeps = schedulermock.NewMockSweepRunner(s.mockCtrl)
	s.profiles = queriesmock.NewMockProfileQueries(s.mockCtrl)
	s.vouchers = commandsmock.NewMockVoucherCommands(s.mockCtrl)
	s.cashback = commandsmock.NewMockCashbackCommands(s.mockCtrl)

	// Mock authentication middleware for testing
	auth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("subject", "ops")
		c.Set("user_role", session.RoleAdmin)
		c.Next()
	}

	bh := api.NewBroadcastHandler(s.broadcaster)
	sh := api.NewSweepHandler(s.sweeps)
	uh := api.NewUserHandler(s.profiles)
	vh := api.NewVoucherHandler(s.vouchers)
	ch := api.NewCashbackHandler(s.cashback)

	g := s.router.Group("/api/admin", auth)
	g.POST("/broadcast", bh.Broadcast)
	g.POST("/send-single-message", bh.SendSingle)
	g.POST("/sweeps/:name", sh.Run)
	g.GET("/users/:telegramId", uh.Get)
	g.GET("/stats", uh.Stats)
	g.POST("/vouchers", vh.Create)
	g.POST("/vouchers/:code/redeem", vh.Redeem)
	g.GET("/cashback/:telegramId", ch.History)
	g.POST("/cashback/:telegramId/purchase", ch.Purchase)
	g.POST("/cashback/:telegramId/use", ch.Use)
	g.POST("/cashback/:telegramId/refund", ch.Refund)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

const token = "bearer-token"

// ================================================================================
// Broadcast
// ================================================================================

func (s *AdminHandlerTestSuite) TestBroadcast() {
	url := "/api/admin/broadcast"

	s.Run("success: returns delivery counts", func() {
		s.broadcaster.EXPECT().Broadcast(gomock.Any(), "Yangi kolleksiya!").
			Return(broadcast.Result{Total: 4, Success: 3, Failure: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"message": "Yangi kolleksiya!"}, token)

		var body resdto.BroadcastResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(4, body.Total)
		s.Equal(3, body.Success)
		s.InDelta(75.0, body.SuccessRate, 0.001)
	})

	s.Run("error: 400 on missing message", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"message": "x"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *AdminHandlerTestSuite) TestSendSingle() {
	url := "/api/admin/send-single-message"
	req := map[string]any{"telegramId": 5001, "message": "Salom"}

	s.Run("success: delivered", func() {
		s.broadcaster.EXPECT().SendSingle(gomock.Any(), int64(5001), "Salom").Return(true).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, token)

		var body resdto.SendSingleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Delivered)
	})

	s.Run("error: 502 when telegram refuses", func() {
		s.broadcaster.EXPECT().SendSingle(gomock.Any(), int64(5001), "Salom").Return(false).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, token)
		s.Equal(http.StatusBadGateway, rec.Code)
	})

	s.Run("error: 400 without telegramId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), req, testutil.Field("telegramId", nil)), token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// Sweeps
// ================================================================================

func (s *AdminHandlerTestSuite) TestRunSweep() {
	s.Run("success: returns report", func() {
		s.sweeps.EXPECT().Run(gomock.Any(), scheduler.SweepFollowup).
			Return(scheduler.Report{Sweep: scheduler.SweepFollowup, Matched: 3, Notified: 2, Skipped: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/sweeps/"+scheduler.SweepFollowup, nil, token)

		var body resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.SweepResponse{Sweep: scheduler.SweepFollowup, Matched: 3, Notified: 2, Skipped: 1}, body)
	})

	s.Run("error: 400 on unknown sweep", func() {
		s.sweeps.EXPECT().Run(gomock.Any(), "nope").
			Return(scheduler.Report{}, errs.Wrapf(scheduler.ErrUnknownSweep, "sweep %q", "nope")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/sweeps/nope", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "unknown sweep")
	})
}

// ================================================================================
// Users and stats
// ================================================================================

func (s *AdminHandlerTestSuite) TestGetUser() {
	s.Run("success: profile with vouchers and cashback", func() {
		sess := builder.NewSessionBuilder().MustBuild()
		v := builder.NewVoucherBuilder().BuildDomain()
		s.profiles.EXPECT().Profile(gomock.Any(), int64(5001)).Return(&queries.ProfileView{
			Session:  sess,
			Vouchers: []*voucher.Voucher{v},
			Cashback: cashback.Stats{Balance: 2500, TotalEarned: 3000, TotalUsed: 500},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/users/5001", nil, token)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(5001), body.TelegramID)
		s.Equal("+998901234567", body.Phone)
		s.Equal("Ism Familiya", body.FullName)
		s.Equal("15.03.1995", body.BirthDate)
		s.Equal("REGISTERED", body.State)
		s.Equal(int64(2500), body.Cashback.Balance)
		s.Require().Len(body.Vouchers, 1)
		s.Equal("abcd2345", body.Vouchers[0].Code)
		s.Equal(v.ID().String(), body.Vouchers[0].ID)
		s.Equal(v.ExpiresAt().Unix(), body.Vouchers[0].ExpiresAt)
		s.Nil(body.Vouchers[0].UsedAt)
	})

	s.Run("error: 404 for unknown user", func() {
		s.profiles.EXPECT().Profile(gomock.Any(), int64(42)).Return(nil, queries.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/users/42", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "session not found")
	})

	s.Run("error: 400 for malformed id", func() {
		for _, id := range []string{"abc", "0", "-5"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/users/"+id, nil, token)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "telegramId")
		}
	})
}

func (s *AdminHandlerTestSuite) TestStats() {
	s.profiles.EXPECT().Overview(gomock.Any()).Return(&queries.OverviewView{
		Sessions: map[session.State]int64{
			session.StateRegistered:       7,
			session.StateWaitingContact:   2,
			session.StateWaitingBirthDate: 1,
		},
		Vouchers: map[voucher.Status]int64{voucher.StatusActive: 5, voucher.StatusUsed: 2},
	}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/stats", nil, token)

	var body resdto.StatsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(int64(7), body.Registered)
	s.Equal(int64(3), body.Onboarding)
	s.Equal(int64(5), body.Vouchers["ACTIVE"])
}

// ================================================================================
// Vouchers
// ================================================================================

func (s *AdminHandlerTestSuite) TestCreateVoucher() {
	url := "/api/admin/vouchers"
	req := map[string]any{"telegramId": 5001, "amount": 100000, "type": "birthday", "validDays": 3}

	s.Run("success: 201 with the issued voucher", func() {
		v := builder.NewVoucherBuilder().WithType(voucher.TypeBirthday).BuildDomain()
		s.vouchers.EXPECT().Create(gomock.Any(), commands.CreateVoucherRequest{
			OwnerID: 5001, Amount: 100000, Type: voucher.TypeBirthday, ValidDays: 3,
		}).Return(v, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, token)

		var body resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("BIRTHDAY", body.Type)
		s.Equal("ACTIVE", body.Status)
		s.Equal(int64(5001), body.OwnerID)
	})

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "unknown type", mutate: testutil.Field("type", "gift")},
		{name: "zero amount", mutate: testutil.Field("amount", 0)},
		{name: "negative amount", mutate: testutil.Field("amount", -1)},
		{name: "zero validity", mutate: testutil.Field("validDays", 0)},
		{name: "missing owner", mutate: testutil.Field("telegramId", nil)},
	}
	for _, tc := range cases {
		s.Run("error: 400 on "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), req, tc.mutate), token)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("error: 500 hides storage failures", func() {
		s.vouchers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

func (s *AdminHandlerTestSuite) TestRedeemVoucher() {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "unknown code", err: commands.ErrVoucherNotFound, expectedStatus: http.StatusNotFound},
		{name: "already used", err: commands.ErrVoucherNotActive, expectedStatus: http.StatusConflict},
		{name: "expired", err: commands.ErrVoucherExpired, expectedStatus: http.StatusConflict},
		{name: "malformed code", err: errs.Mark(voucher.ErrInvalidCode, errs.ErrValidation), expectedStatus: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.Run("error: "+tc.name, func() {
			s.vouchers.EXPECT().Redeem(gomock.Any(), "ZZZZ9999").Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/vouchers/ZZZZ9999/redeem", nil, token)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
		})
	}

	s.Run("success: returns used voucher", func() {
		v := builder.NewVoucherBuilder().Used(builder.FixedNow).BuildDomain()
		s.vouchers.EXPECT().Redeem(gomock.Any(), "abcd2345").Return(v, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/vouchers/abcd2345/redeem", nil, token)

		var body resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("USED", body.Status)
		s.Require().NotNil(body.UsedAt)
		s.Equal(builder.FixedNow.Unix(), *body.UsedAt)
	})
}

// ================================================================================
// Cashback
// ================================================================================

func (s *AdminHandlerTestSuite) TestCashbackPurchase() {
	pct, err := cashback.NewPercentage("5")
	s.Require().NoError(err)
	entry, err := cashback.NewEarned(5001, 200000, pct, "frames", builder.FixedNow)
	s.Require().NoError(err)

	s.cashback.EXPECT().AddPurchase(gomock.Any(), int64(5001), int64(200000), "frames").
		Return(&commands.CashbackResult{Entry: entry, Balance: 10000}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/cashback/5001/purchase",
		map[string]any{"amount": 200000, "description": "frames"}, token)

	var body resdto.CashbackResultResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	s.Equal(int64(10000), body.Balance)
	s.Equal(int64(10000), body.Entry.CashbackAmount)
	s.Equal("EARNED", body.Entry.Type)
	s.Equal("5", body.Entry.Percentage)
}

func (s *AdminHandlerTestSuite) TestCashbackUse() {
	s.Run("error: 409 on insufficient balance", func() {
		s.cashback.EXPECT().Use(gomock.Any(), int64(5001), int64(999999), "").
			Return(nil, commands.ErrInsufficientBalance).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/cashback/5001/use",
			map[string]any{"amount": 999999}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "insufficient")
	})

	s.Run("error: 400 on non-positive amount", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/cashback/5001/use",
			map[string]any{"amount": 0}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *AdminHandlerTestSuite) TestCashbackRefund() {
	entry, err := cashback.NewRefund(5001, 3000, "returned lens", builder.FixedNow)
	s.Require().NoError(err)
	s.cashback.EXPECT().Refund(gomock.Any(), int64(5001), int64(3000), "returned lens").
		Return(&commands.CashbackResult{Entry: entry, Balance: 3000}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/cashback/5001/refund",
		map[string]any{"amount": 3000, "description": "returned lens"}, token)

	var body resdto.CashbackResultResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	s.Equal("REFUNDED", body.Entry.Type)
}

func (s *AdminHandlerTestSuite) TestCashbackHistory() {
	s.Run("success: entries and totals", func() {
		used, err := cashback.NewUsed(5001, 500, 1000, "", builder.FixedNow)
		s.Require().NoError(err)
		s.cashback.EXPECT().History(gomock.Any(), int64(5001)).Return([]*cashback.Entry{used}, nil).Times(1)
		s.cashback.EXPECT().Stats(gomock.Any(), int64(5001)).
			Return(cashback.Stats{Balance: 500, TotalEarned: 1000, TotalUsed: 500}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/cashback/5001", nil, token)

		var body resdto.CashbackHistoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.CashbackStatsResponse{Balance: 500, TotalEarned: 1000, TotalUsed: 500}, body.Stats)
		s.Require().Len(body.Entries, 1)
		s.Equal("USED", body.Entries[0].Status)
		s.Require().NotNil(body.Entries[0].UsedAt)
	})

	s.Run("error: 404 for unknown user", func() {
		s.cashback.EXPECT().History(gomock.Any(), int64(77)).Return(nil, commands.ErrSessionNotFound).Times(1)
		s.cashback.EXPECT().Stats(gomock.Any(), int64(77)).Return(cashback.Stats{}, commands.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/cashback/77", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
