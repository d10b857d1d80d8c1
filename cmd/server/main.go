package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/handler"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/database"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/cron"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/email"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oauth"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oss"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/pubsub"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/queue"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/ws"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	tripQueue := queue.NewQueue(rdb, cfg.Queue.TripQueue)
	emailService := email.NewService(&cfg.Email)
	stateStore := oauth.NewStateStore(rdb)

	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Bridge trip progress from Redis pub/sub to connected websocket clients.
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	userService := service.NewUserService(db, userRepo, creditRepo, activityRepo, emailService, ossClient, cfg)
	authService := service.NewAuthService(userService, cfg)
	creditService := service.NewCreditService(db, userRepo, creditRepo, activityRepo, cfg)
	rewardService := service.NewRewardService(db, userRepo, rewardRepo, creditRepo, activityRepo, cfg)
	subscriptionService := service.NewSubscriptionService(db, userRepo, subRepo, planRepo, activityRepo, emailService, cfg)
	tripService := service.NewTripService(db, userRepo, tripRepo, creditService, rewardService, rewardRepo, activityRepo, tripQueue, cfg)

	if err := subscriptionService.EnsureDefaultPlans(); err != nil {
		log.Printf("Warning: Failed to seed subscription plans: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, stateStore)
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService)
	creditHandler := handler.NewCreditHandler(creditService)
	rewardHandler := handler.NewRewardHandler(rewardService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, cfg)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// Background loops run inside the API process: hourly expiry sweep and
	// stale trip cleanup.
	cronService := cron.NewService(subscriptionService, tripRepo, time.Hour)
	cronService.Start()
	defer cronService.Stop()

	router := api.NewRouter(
		authHandler,
		userHandler,
		tripHandler,
		creditHandler,
		rewardHandler,
		subscriptionHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
