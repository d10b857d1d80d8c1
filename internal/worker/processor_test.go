package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/ai"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/queue"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/testutil"
)

type stubGenerator struct {
	itinerary string
	err       error
	lastReq   *ai.TripRequest
}

func (g *stubGenerator) GenerateItinerary(ctx context.Context, req *ai.TripRequest) (string, error) {
	g.lastReq = req
	if g.err != nil {
		return "", g.err
	}
	return g.itinerary, nil
}

func TestProcessor_Process_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	trip := testutil.TestTrip(t, db, user.ID)

	gen := &stubGenerator{itinerary: `{"destination":"Kyoto","days":[]}`}
	tripRepo := repository.NewTripRepository(db)
	processor := NewProcessor(tripRepo, gen, nil, nil, nil, &config.Config{})

	msg := &queue.TripMessage{
		TripPlanID:   trip.ID,
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Destination:  trip.Destination,
		DurationDays: trip.DurationDays,
		Budget:       trip.Budget,
	}

	err := processor.Process(context.Background(), msg)
	require.NoError(t, err)

	got, err := tripRepo.GetByID(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TripStatusCompleted, got.Status)
	assert.Equal(t, `{"destination":"Kyoto","days":[]}`, got.Itinerary)
	assert.NotNil(t, got.CompletedAt)
	assert.Empty(t, got.ErrorMessage)

	require.NotNil(t, gen.lastReq)
	assert.Equal(t, trip.Destination, gen.lastReq.Destination)
	assert.Equal(t, trip.DurationDays, gen.lastReq.DurationDays)
}

func TestProcessor_Process_GenerationFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	trip := testutil.TestTrip(t, db, user.ID)

	gen := &stubGenerator{err: errors.New("model unavailable")}
	tripRepo := repository.NewTripRepository(db)
	processor := NewProcessor(tripRepo, gen, nil, nil, nil, &config.Config{})

	msg := &queue.TripMessage{
		TripPlanID:  trip.ID,
		UserID:      user.ID,
		Destination: trip.Destination,
	}

	err := processor.Process(context.Background(), msg)
	require.Error(t, err)

	got, err := tripRepo.GetByID(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TripStatusFailed, got.Status)
	assert.Contains(t, got.ErrorMessage, "model unavailable")
	assert.Nil(t, got.CompletedAt)
}

func TestProcessor_Process_TripNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	gen := &stubGenerator{itinerary: "{}"}
	tripRepo := repository.NewTripRepository(db)
	processor := NewProcessor(tripRepo, gen, nil, nil, nil, &config.Config{})

	err := processor.Process(context.Background(), &queue.TripMessage{TripPlanID: 9999})
	assert.Error(t, err)
}

func TestProcessor_Process_AlreadyCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	trip := testutil.TestTrip(t, db, user.ID, testutil.WithTripStatus(model.TripStatusCompleted))

	gen := &stubGenerator{itinerary: "{}"}
	tripRepo := repository.NewTripRepository(db)
	processor := NewProcessor(tripRepo, gen, nil, nil, nil, &config.Config{})

	err := processor.Process(context.Background(), &queue.TripMessage{TripPlanID: trip.ID, UserID: user.ID})
	require.NoError(t, err)

	// Generator never invoked for a finished trip.
	assert.Nil(t, gen.lastReq)
}
