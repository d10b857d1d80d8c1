package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/middleware"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/response"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

type TripHandler struct {
	tripService *service.TripService
}

func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// Create starts a new trip plan, debiting one credit for free-tier users.
// POST /api/v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.tripService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientCredits):
			response.CreditsError(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Trip created", resp)
}

// List returns the user trips, paged.
// GET /api/v1/trips?page=1&page_size=10
func (h *TripHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := parsePagination(c)

	trips, total, err := h.tripService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, trips)
}

// Get returns one trip.
// GET /api/v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid trip id")
		return
	}

	trip, err := h.tripService.Get(userID, tripID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTripPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, trip)
}

// Delete removes a trip.
// DELETE /api/v1/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid trip id")
		return
	}

	if err := h.tripService.Delete(userID, tripID); err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTripPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Trip deleted", nil)
}

// SubmitFeedback records feedback on a completed trip and awards points when
// eligible.
// POST /api/v1/trips/:id/feedback
func (h *TripHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid trip id")
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.tripService.SubmitFeedback(userID, tripID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTripPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Feedback submitted", resp)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
