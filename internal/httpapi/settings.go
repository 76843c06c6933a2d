package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/settings"
)

// GetPublicConfig returns the public leaderboard configuration.
func GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":    settings.Title(),
		"top_size": settings.TopSize(),
	})
}

// SettingsHandler handles admin updates of runtime settings.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// updateSettingsRequest defines the request body for settings updates.
type updateSettingsRequest struct {
	Title   *string `json:"title"`
	TopSize *int    `json:"top_size"`
}

// Update writes the supplied settings and refreshes the snapshot.
func (h *SettingsHandler) Update(c *gin.Context) {
	var body updateSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.Title == nil && body.TopSize == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings supplied"})
		return
	}

	if body.Title != nil {
		title := strings.TrimSpace(*body.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		if errSet := settings.Set(c.Request.Context(), h.db, settings.TitleKey, title); errSet != nil {
			writeServiceError(c, errSet)
			return
		}
	}
	if body.TopSize != nil {
		if *body.TopSize < 1 || *body.TopSize > settings.MaxTopSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top_size out of range"})
			return
		}
		if errSet := settings.Set(c.Request.Context(), h.db, settings.TopSizeKey, *body.TopSize); errSet != nil {
			writeServiceError(c, errSet)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"title":    settings.Title(),
		"top_size": settings.TopSize(),
	})
}
