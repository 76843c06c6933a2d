package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snakegame/leaderboard/internal/admins"
)

// AuthHandler handles admin registration, login and identity lookup.
type AuthHandler struct {
	admins *admins.Service
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *admins.Service) *AuthHandler {
	return &AuthHandler{admins: svc}
}

// credentialsRequest defines the request body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new admin account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	identity, token, err := h.admins.Register(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "admin": identity})
}

// Login authenticates an admin and returns a fresh session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	identity, token, err := h.admins.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "admin": identity})
}

// Me returns the identity of the authenticated admin.
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := adminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
		return
	}

	identity, err := h.admins.GetSelf(c.Request.Context(), adminID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, identity)
}
