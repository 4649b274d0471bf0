package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kuponbot/internal/handler/api"
	"kuponbot/internal/handler/middleware"
	"kuponbot/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the admin API handlers so they can be injected as one value.
type Handlers struct {
	Auth      *api.AuthHandler
	Broadcast *api.BroadcastHandler
	Sweep     *api.SweepHandler
	User      *api.UserHandler
	Voucher   *api.VoucherHandler
	Cashback  *api.CashbackHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := engine.Group("/api/auth")
	addRoutes(auth, []route{
		{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{middleware.RateLimit(6*time.Second, 5)}},
	})

	admin := engine.Group("/api/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/broadcast", Handler: h.Broadcast.Broadcast},
			{Method: http.MethodPost, Path: "/send-single-message", Handler: h.Broadcast.SendSingle},
			{Method: http.MethodPost, Path: "/sweeps/:name", Handler: h.Sweep.Run},
			{Method: http.MethodGet, Path: "/users/:telegramId", Handler: h.User.Get},
			{Method: http.MethodGet, Path: "/stats", Handler: h.User.Stats},
			{Method: http.MethodPost, Path: "/vouchers", Handler: h.Voucher.Create},
			{Method: http.MethodPost, Path: "/vouchers/:code/redeem", Handler: h.Voucher.Redeem},
		})

		cashback := admin.Group("/cashback/:telegramId")
		addRoutes(cashback, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Cashback.History},
			{Method: http.MethodPost, Path: "/purchase", Handler: h.Cashback.Purchase},
			{Method: http.MethodPost, Path: "/use", Handler: h.Cashback.Use},
			{Method: http.MethodPost, Path: "/refund", Handler: h.Cashback.Refund},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
