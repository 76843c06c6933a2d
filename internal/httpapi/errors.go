package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/snakegame/leaderboard/internal/admins"
	"github.com/snakegame/leaderboard/internal/leaderboard"
	"github.com/snakegame/leaderboard/internal/validate"
)

// writeServiceError maps service errors to HTTP responses. Anything not in
// the taxonomy is logged and reported as an internal error.
func writeServiceError(c *gin.Context, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Fields})
	case errors.Is(err, admins.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, admins.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, admins.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin account is disabled"})
	case errors.Is(err, admins.ErrAdminNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
	case errors.Is(err, leaderboard.ErrScoreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "score not found"})
	case errors.Is(err, leaderboard.ErrAuthorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
	default:
		log.WithFields(log.Fields{
			"request_id": c.GetString(ctxKeyRequestID),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
