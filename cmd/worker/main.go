package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/database"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/ai"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/email"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oss"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/pubsub"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/queue"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/worker"
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

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		log.Fatalf("Failed to init AI client: %v", err)
	}
	defer aiClient.Close()

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
	publisher := pubsub.NewPublisher(rdb)
	emailService := email.NewService(&cfg.Email)

	tripRepo := repository.NewTripRepository(db)

	processor := worker.NewProcessor(tripRepo, aiClient, ossClient, emailService, publisher, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := tripQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop job: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // timeout, keep waiting
					}

					log.Printf("Worker %d: processing trip %d", workerID, msg.TripPlanID)
					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: trip %d failed: %v", workerID, msg.TripPlanID, err)
					}
				}
			}
		}(i)
	}

	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
