package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/database"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

var (
	dryRun     = flag.Bool("dry-run", true, "Report what would change without writing")
	expireSubs = flag.Bool("expire-subs", true, "Downgrade lapsed premium subscriptions")
	failStale  = flag.Bool("fail-stale", true, "Fail trips stuck in generating")
	staleHours = flag.Int("stale-hours", 1, "Hours before a generating trip counts as stuck")
)

// One-shot maintenance pass. The server runs the same sweeps hourly; this
// binary exists for manual runs and external schedulers.
func main() {
	flag.Parse()

	log.Println("Starting maintenance sweep...")
	log.Printf("Mode: dry-run=%v", *dryRun)

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

	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tripRepo := repository.NewTripRepository(db)

	now := time.Now()

	if *expireSubs {
		if *dryRun {
			expired, err := subRepo.ListExpired(now)
			if err != nil {
				log.Fatalf("Failed to query expired subscriptions: %v", err)
			}
			for _, sub := range expired {
				log.Printf("  - subscription %d (user %d, expired %s)",
					sub.ID, sub.UserID, sub.ExpiresAt.Format(time.RFC3339))
			}
			log.Printf("Would expire %d subscriptions", len(expired))
		} else {
			subscriptionService := service.NewSubscriptionService(db, userRepo, subRepo, planRepo, activityRepo, nil, cfg)
			count, err := subscriptionService.Expire(now)
			if err != nil {
				log.Fatalf("Expiry sweep failed: %v", err)
			}
			log.Printf("Expired %d subscriptions", count)
		}
	}

	if *failStale {
		cutoff := now.Add(-time.Duration(*staleHours) * time.Hour)
		stale, err := tripRepo.ListStaleGenerating(cutoff)
		if err != nil {
			log.Fatalf("Failed to query stale trips: %v", err)
		}

		failed := 0
		for _, trip := range stale {
			log.Printf("  - trip %d (user %d, %s, stuck since %s)",
				trip.ID, trip.UserID, trip.Destination, trip.UpdatedAt.Format(time.RFC3339))
			if *dryRun {
				continue
			}
			err := tripRepo.UpdateFields(trip.ID, map[string]interface{}{
				"status":        model.TripStatusFailed,
				"error_message": "itinerary generation timed out",
			})
			if err != nil {
				log.Printf("    failed to update: %v", err)
				continue
			}
			failed++
		}
		if *dryRun {
			log.Printf("Would fail %d stale trips", len(stale))
		} else {
			log.Printf("Failed %d stale trips", failed)
		}
	}

	if *dryRun {
		log.Println("DRY RUN - no changes were written. Run with -dry-run=false to apply.")
	} else {
		log.Println("Sweep completed")
	}
}
