package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/response"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/testutil"
)

func setupRewardHandler(t *testing.T) (*RewardHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	rewardService := service.NewRewardService(db, userRepo, rewardRepo, creditRepo, activityRepo, testConfig())
	handler := NewRewardHandler(rewardService)

	ctx := &testContext{DB: db}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestRewardHandler_Redeem(t *testing.T) {
	handler, ctx, cleanup := setupRewardHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithCredits(1), testutil.WithRewardPoints(500))

	router := gin.New()
	router.POST("/rewards/redeem", mockAuth(user.ID), handler.Redeem)

	w := performRequest(router, "POST", "/rewards/redeem", dto.RedeemPointsRequest{Points: 500})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), data["credits_awarded"])
	assert.Equal(t, float64(0), data["remaining_points"])
	assert.Equal(t, float64(7), data["new_credit_balance"])
}

func TestRewardHandler_Redeem_InvalidTier(t *testing.T) {
	handler, ctx, cleanup := setupRewardHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithRewardPoints(500))

	router := gin.New()
	router.POST("/rewards/redeem", mockAuth(user.ID), handler.Redeem)

	w := performRequest(router, "POST", "/rewards/redeem", dto.RedeemPointsRequest{Points: 300})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestRewardHandler_Redeem_InsufficientPoints(t *testing.T) {
	handler, ctx, cleanup := setupRewardHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithRewardPoints(100))

	router := gin.New()
	router.POST("/rewards/redeem", mockAuth(user.ID), handler.Redeem)

	w := performRequest(router, "POST", "/rewards/redeem", dto.RedeemPointsRequest{Points: 250})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeInsufficientPoints, resp.Code)
}

func TestRewardHandler_Tiers(t *testing.T) {
	handler, ctx, cleanup := setupRewardHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithRewardPoints(250))

	router := gin.New()
	router.GET("/rewards/tiers", mockAuth(user.ID), handler.Tiers)

	w := performRequest(router, "GET", "/rewards/tiers", nil)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(250), data["current_points"])

	tiers, ok := data["tiers"].([]interface{})
	require.True(t, ok)
	require.Len(t, tiers, 3)

	first, ok := tiers[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, first["available"])
}

func TestRewardHandler_ListTransactions(t *testing.T) {
	handler, ctx, cleanup := setupRewardHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithRewardPoints(250))

	router := gin.New()
	router.POST("/rewards/redeem", mockAuth(user.ID), handler.Redeem)
	router.GET("/rewards/transactions", mockAuth(user.ID), handler.ListTransactions)

	performRequest(router, "POST", "/rewards/redeem", dto.RedeemPointsRequest{Points: 250})

	w := performRequest(router, "GET", "/rewards/transactions", nil)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}
