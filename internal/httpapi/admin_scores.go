package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snakegame/leaderboard/internal/admins"
	"github.com/snakegame/leaderboard/internal/leaderboard"
)

// AdminScoreHandler handles admin-only score mutations.
type AdminScoreHandler struct {
	board *leaderboard.Service
}

// NewAdminScoreHandler constructs an AdminScoreHandler.
func NewAdminScoreHandler(board *leaderboard.Service) *AdminScoreHandler {
	return &AdminScoreHandler{board: board}
}

// scoreID parses the :id path parameter.
func scoreID(c *gin.Context) (uint64, bool) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score id"})
		return 0, false
	}
	return id, true
}

// Get returns a single score together with its author, when one is recorded.
func (h *AdminScoreHandler) Get(c *gin.Context) {
	id, ok := scoreID(c)
	if !ok {
		return
	}

	entry, err := h.board.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	author, errAuthor := h.board.Author(c.Request.Context(), id)
	if errAuthor != nil && !errors.Is(errAuthor, leaderboard.ErrAuthorNotFound) {
		writeServiceError(c, errAuthor)
		return
	}

	response := gin.H{"score": entry}
	if author != nil {
		response["author"] = admins.Identity{ID: author.ID, Username: author.Username, Role: author.Role}
	}
	c.JSON(http.StatusOK, response)
}

// Update applies a partial edit to a score.
func (h *AdminScoreHandler) Update(c *gin.Context) {
	id, ok := scoreID(c)
	if !ok {
		return
	}

	var body leaderboard.UpdateInput
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var actorID *uint64
	if adminID, okActor := adminIDFromContext(c); okActor {
		actorID = &adminID
	}

	entry, err := h.board.Update(c.Request.Context(), id, body, actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "score updated", "score": entry})
}

// Delete removes a score.
func (h *AdminScoreHandler) Delete(c *gin.Context) {
	id, ok := scoreID(c)
	if !ok {
		return
	}

	if err := h.board.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "score deleted"})
}
