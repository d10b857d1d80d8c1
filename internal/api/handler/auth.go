package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oauth"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/response"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
}

func NewAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		stateStore:  stateStore,
	}
}

// GoogleAuth hands out the Google consent URL.
// GET /api/v1/auth/google
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")

	state, err := h.stateStore.GenerateState(c.Request.Context(), redirectURI)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, &dto.AuthURLResponse{
		AuthURL: h.authService.GetGoogleAuthURL(state),
		State:   state,
	})
}

// GoogleCallback completes the sign-in and issues a token.
// GET /api/v1/auth/google/callback?code=xxx&state=xxx
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		response.ParamError(c, "missing authorization code")
		return
	}

	if _, err := h.stateStore.ValidateState(c.Request.Context(), state); err != nil {
		response.AuthError(c, "Invalid or expired state")
		return
	}

	resp, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.AuthError(c, "Google sign-in failed")
		return
	}

	response.SuccessWithMessage(c, "Signed in", resp)
}
