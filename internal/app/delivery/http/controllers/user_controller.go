package controllers

import (
	"net/http"
	"sync"

	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/dto/responses"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type UserController struct {
	Log *zap.Logger
}

var (
	userControllerInstance *UserController
	onceUserController     sync.Once
)

func NewUserController(logger *zap.Logger) *UserController {
	onceUserController.Do(func() {
		userControllerInstance = &UserController{Log: logger}
	})
	return userControllerInstance
}

// GetMe returns the caller's resolved identity. The heavy lifting already
// happened in the middleware chain; this handler only shapes the payload.
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)
	if !ok || identity == nil || identity.Principal == nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrNotAuthenticated(nil))
		return
	}

	response := responses.ResolvedIdentityResponse{
		ID:      identity.Principal.ID,
		Email:   identity.Principal.Email,
		Role:    identity.Role,
		Profile: identity.Profile,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetIdentitySuccessMessage, response)
}
