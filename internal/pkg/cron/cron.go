package cron

import (
	"log"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

type Service struct {
	subscriptionService *service.SubscriptionService
	tripRepo            *repository.TripRepository
	staleAfter          time.Duration
	stopChan            chan struct{}
}

func NewService(
	subscriptionService *service.SubscriptionService,
	tripRepo *repository.TripRepository,
	staleAfter time.Duration,
) *Service {
	if staleAfter <= 0 {
		staleAfter = time.Hour
	}
	return &Service{
		subscriptionService: subscriptionService,
		tripRepo:            tripRepo,
		staleAfter:          staleAfter,
		stopChan:            make(chan struct{}),
	}
}

// Start launches the background loops.
func (s *Service) Start() {
	go s.runExpirySweep()
	go s.runStaleTripCleanup()
	log.Println("Cron service started (subscription expiry + stale trip cleanup)")
}

// Stop terminates the background loops.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runExpirySweep downgrades lapsed premium subscriptions every hour.
func (s *Service) runExpirySweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Sweep once on startup so a restarted server catches up immediately.
	s.sweepExpired()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *Service) sweepExpired() {
	count, err := s.subscriptionService.Expire(time.Now())
	if err != nil {
		log.Printf("Subscription expiry sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Subscription expiry sweep: %d subscriptions downgraded", count)
	}
}

// runStaleTripCleanup fails trips stuck in generating, hourly.
func (s *Service) runStaleTripCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.failStaleTrips()
		}
	}
}

// failStaleTrips marks trips that have been generating longer than staleAfter
// as failed. Worker crashes would otherwise leave them in generating forever.
func (s *Service) failStaleTrips() {
	cutoff := time.Now().Add(-s.staleAfter)
	trips, err := s.tripRepo.ListStaleGenerating(cutoff)
	if err != nil {
		log.Printf("Stale trip cleanup: failed to query: %v", err)
		return
	}

	cleaned := 0
	for _, trip := range trips {
		err := s.tripRepo.UpdateFields(trip.ID, map[string]interface{}{
			"status":        model.TripStatusFailed,
			"error_message": "itinerary generation timed out",
		})
		if err != nil {
			log.Printf("Stale trip cleanup: failed to update trip %d: %v", trip.ID, err)
			continue
		}
		cleaned++
	}
	if cleaned > 0 {
		log.Printf("Stale trip cleanup: %d trips marked failed", cleaned)
	}
}

// RunNow triggers the expiry sweep immediately (manual or test use).
func (s *Service) RunNow() (int, error) {
	log.Println("Manual expiry sweep triggered...")
	return s.subscriptionService.Expire(time.Now())
}
