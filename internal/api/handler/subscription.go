package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/middleware"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/response"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	cfg                 *config.Config
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

// ListPlans lists the purchasable plans.
// GET /api/v1/subscriptions/plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, plans)
}

// Create activates a premium subscription after payment.
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.Create(userID, req.PlanID, req.PaymentMethod, req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, resp.Message, resp)
}

// Cancel stops auto-renewal. Premium stays active until the paid-through date.
// POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid subscription id")
		return
	}

	if err := h.subscriptionService.Cancel(userID, subID); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "Subscription cancelled", nil)
}

// Status reports the caller's premium entitlement.
// GET /api/v1/subscriptions/status
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.subscriptionService.Status(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// ExpireSweep downgrades all lapsed subscriptions. Guarded by the admin token;
// the cron loop covers the normal path, this endpoint exists for ops.
// POST /api/v1/admin/subscriptions/expire
func (h *SubscriptionHandler) ExpireSweep(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if h.cfg.Admin.Token == "" || token != h.cfg.Admin.Token {
		response.PermissionError(c, "admin token required")
		return
	}

	count, err := h.subscriptionService.Expire(time.Now())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, &dto.ExpireSweepResponse{ExpiredCount: count})
}
