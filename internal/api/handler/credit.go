package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/api/middleware"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/response"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

type CreditHandler struct {
	creditService *service.CreditService
}

func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// GetBalance returns the current credit balance.
// GET /api/v1/credits/balance
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	balance, err := h.creditService.GetBalance(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, balance)
}

// Add tops up the credit balance.
// POST /api/v1/credits
func (h *CreditHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AddCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	newBalance, err := h.creditService.Add(userID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Credits added", &dto.AddCreditsResponse{NewBalance: newBalance})
}

// ListTransactions pages through the credit ledger, newest first.
// GET /api/v1/credits/transactions?page=1&page_size=10
func (h *CreditHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := parsePagination(c)

	txs, total, err := h.creditService.ListTransactions(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, txs)
}
