package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shrtr-be/internal/models"
	"shrtr-be/internal/service"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

// GetRateLimit handles GET /api/v1/settings/rate-limit
func (sc *SettingsController) GetRateLimit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := sc.settingsService.GetRateLimit(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get rate-limit settings",
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateRateLimit handles PUT /api/v1/settings/rate-limit
func (sc *SettingsController) UpdateRateLimit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RateLimitSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	settings, err := sc.settingsService.UpdateRateLimit(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update rate-limit settings",
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}
