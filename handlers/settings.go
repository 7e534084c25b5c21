package handlers

import (
	"log"
	"net/http"

	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings SettingsStore
}

func NewSettingsHandler(settings SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.settings.GetSettings(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Error fetching settings: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettings replaces every setting; omitted fields are cleared.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var s models.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.UpdateSettings(c.Request.Context(), &s); err != nil {
		log.Printf("[%s] Error updating settings: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
