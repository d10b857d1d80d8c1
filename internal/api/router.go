package api

import (
	"github.com/gin-gonic/gin"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/handler"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	tripHandler         *handler.TripHandler
	creditHandler       *handler.CreditHandler
	rewardHandler       *handler.RewardHandler
	subscriptionHandler *handler.SubscriptionHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tripHandler *handler.TripHandler,
	creditHandler *handler.CreditHandler,
	rewardHandler *handler.RewardHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		tripHandler:         tripHandler,
		creditHandler:       creditHandler,
		rewardHandler:       rewardHandler,
		subscriptionHandler: subscriptionHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// Public: sign-in
		auth := api.Group("/auth")
		{
			auth.GET("/google", r.authHandler.GoogleAuth)
			auth.GET("/google/callback", r.authHandler.GoogleCallback)
		}

		// Public: plan catalog
		api.GET("/subscriptions/plans", r.subscriptionHandler.ListPlans)

		// Authenticated
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			trips := authenticated.Group("/trips")
			{
				trips.POST("", r.tripHandler.Create)
				trips.GET("", r.tripHandler.List)
				trips.GET("/:id", r.tripHandler.Get)
				trips.DELETE("/:id", r.tripHandler.Delete)
				trips.POST("/:id/feedback", r.tripHandler.SubmitFeedback)
			}

			credits := authenticated.Group("/credits")
			{
				credits.GET("/balance", r.creditHandler.GetBalance)
				credits.POST("", r.creditHandler.Add)
				credits.GET("/transactions", r.creditHandler.ListTransactions)
			}

			rewards := authenticated.Group("/rewards")
			{
				rewards.POST("/redeem", r.rewardHandler.Redeem)
				rewards.GET("/tiers", r.rewardHandler.Tiers)
				rewards.GET("/transactions", r.rewardHandler.ListTransactions)
			}

			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Create)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
				subscriptions.GET("/status", r.subscriptionHandler.Status)
			}
		}

		// Ops
		api.POST("/admin/subscriptions/expire", r.subscriptionHandler.ExpireSweep)
	}

	return engine
}
