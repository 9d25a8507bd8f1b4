package controllers

import (
	"net/http"
	"sync"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/utils"
)

type HealthController struct {
	InternalConfig *config.InternalConfig
}

var (
	healthControllerInstance *HealthController
	onceHealthController     sync.Once
)

func NewHealthController(internalConfig *config.InternalConfig) *HealthController {
	onceHealthController.Do(func() {
		healthControllerInstance = &HealthController{InternalConfig: internalConfig}
	})
	return healthControllerInstance
}

func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"version": c.InternalConfig.App.Version,
	})
}
