package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snakegame/leaderboard/internal/leaderboard"
	"github.com/snakegame/leaderboard/internal/settings"
)

// ScoreHandler handles the public score endpoints.
type ScoreHandler struct {
	board *leaderboard.Service
}

// NewScoreHandler constructs a ScoreHandler.
func NewScoreHandler(board *leaderboard.Service) *ScoreHandler {
	return &ScoreHandler{board: board}
}

// Submit records a new score entry.
func (h *ScoreHandler) Submit(c *gin.Context) {
	var body leaderboard.SubmitInput
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	entry, err := h.board.Submit(c.Request.Context(), body)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List returns every score in ranking order.
func (h *ScoreHandler) List(c *gin.Context) {
	scores, err := h.board.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// Top returns the leading scores. The length defaults to the configured top
// size and can be narrowed with ?limit=.
func (h *ScoreHandler) Top(c *gin.Context) {
	n := settings.TopSize()
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, errParse := strconv.Atoi(raw)
		if errParse != nil || parsed < 1 || parsed > settings.MaxTopSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		n = parsed
	}

	scores, err := h.board.Top(c.Request.Context(), n)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
