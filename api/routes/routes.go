package routes

import (
	"net/http"

	"github.com/ArowuTest/numbers-lottery-backend/internal/config"
	"github.com/ArowuTest/numbers-lottery-backend/internal/handlers"
	"github.com/ArowuTest/numbers-lottery-backend/internal/metrics"
	"github.com/ArowuTest/numbers-lottery-backend/internal/middleware"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandlerDependencies holds everything the router mounts
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	DrawHandler    *handlers.DrawHandler
	JackpotHandler *handlers.JackpotHandler
	TicketHandler  *handlers.TicketHandler
	WSHandler      *handlers.WSHandler
	Tokens         *jwt.TokenService
	Metrics        *metrics.Metrics
	Logger         logrus.FieldLogger
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/ws", deps.WSHandler.Serve)

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)

		public.GET("/jackpot", deps.JackpotHandler.GetJackpot)

		public.POST("/tickets", deps.TicketHandler.BuyTickets)
		public.GET("/tickets", deps.TicketHandler.ListTickets)

		public.GET("/draws", deps.DrawHandler.ListDraws)
		public.GET("/draws/:id/results", deps.DrawHandler.GetResults)
		public.GET("/draws/:id/export", deps.DrawHandler.ExportResults)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens, jwt.RoleOperator, deps.Logger))
	{
		protected.POST("/draws", deps.DrawHandler.RunDraw)
	}

	return router
}
