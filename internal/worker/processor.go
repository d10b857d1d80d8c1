package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/ai"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/email"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oss"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/pubsub"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/queue"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

// ItineraryGenerator produces an itinerary JSON payload for a trip request.
// *ai.Client is the production implementation.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, req *ai.TripRequest) (string, error)
}

type Processor struct {
	tripRepo     *repository.TripRepository
	generator    ItineraryGenerator
	ossClient    *oss.Client
	emailService *email.Service
	publisher    *pubsub.Publisher
	cfg          *config.Config
}

func NewProcessor(
	tripRepo *repository.TripRepository,
	generator ItineraryGenerator,
	ossClient *oss.Client,
	emailService *email.Service,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *Processor {
	return &Processor{
		tripRepo:     tripRepo,
		generator:    generator,
		ossClient:    ossClient,
		emailService: emailService,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// Process runs one itinerary generation job end to end. A generation failure
// marks the trip failed and keeps the debit; the planning attempt was made.
func (p *Processor) Process(ctx context.Context, msg *queue.TripMessage) error {
	trip, err := p.tripRepo.GetByID(msg.TripPlanID)
	if err != nil {
		return fmt.Errorf("failed to get trip: %w", err)
	}

	if trip.Status == model.TripStatusCompleted {
		log.Printf("Trip %d: already completed, skipping", trip.ID)
		return nil
	}

	publishProgress := func(step, status, errMsg string) {
		if p.publisher == nil {
			return
		}
		p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
			UserID:     msg.UserID,
			TripPlanID: msg.TripPlanID,
			Status:     status,
			Step:       step,
			Error:      errMsg,
		})
	}

	handleError := func(step string, err error) error {
		errMsg := err.Error()
		p.tripRepo.UpdateFields(trip.ID, map[string]interface{}{
			"status":        model.TripStatusFailed,
			"error_message": errMsg,
		})
		publishProgress(step, "failed", errMsg)
		return err
	}

	log.Printf("Trip %d: generating itinerary for %s (%d days)", trip.ID, msg.Destination, msg.DurationDays)
	if err := p.tripRepo.UpdateFields(trip.ID, map[string]interface{}{
		"status": model.TripStatusGenerating,
	}); err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	publishProgress(pubsub.StepGenerating, "processing", "")

	itinerary, err := p.generator.GenerateItinerary(ctx, &ai.TripRequest{
		Destination:  msg.Destination,
		DurationDays: msg.DurationDays,
		Budget:       msg.Budget,
		Activities:   msg.Activities,
		TravelWith:   msg.TravelWith,
	})
	if err != nil {
		return handleError(pubsub.StepGenerating, fmt.Errorf("generation failed: %w", err))
	}

	log.Printf("Trip %d: saving itinerary", trip.ID)
	publishProgress(pubsub.StepSaving, "processing", "")

	// OSS export is best-effort. The itinerary is already persisted in the
	// trip row; a missing export URL only disables the download link.
	var itineraryURL string
	if p.ossClient != nil {
		itineraryURL, err = p.ossClient.UploadItinerary(trip.ID, []byte(itinerary))
		if err != nil {
			log.Printf("Trip %d: itinerary export failed: %v", trip.ID, err)
			itineraryURL = ""
		}
	}

	completedAt := time.Now()
	fields := map[string]interface{}{
		"status":       model.TripStatusCompleted,
		"itinerary":    itinerary,
		"completed_at": &completedAt,
	}
	if itineraryURL != "" {
		fields["itinerary_url"] = itineraryURL
	}
	if err := p.tripRepo.UpdateFields(trip.ID, fields); err != nil {
		return handleError(pubsub.StepSaving, fmt.Errorf("failed to save itinerary: %w", err))
	}

	publishProgress(pubsub.StepNotifying, "processing", "")
	if p.emailService != nil && msg.Email != "" {
		if err := p.emailService.SendTripConfirmation(msg.Email, msg.Name, msg.Destination, msg.DurationDays); err != nil {
			log.Printf("Trip %d: confirmation email failed: %v", trip.ID, err)
		}
	}

	publishProgress(pubsub.StepDone, "completed", "")
	log.Printf("Trip %d: completed", trip.ID)

	return nil
}
