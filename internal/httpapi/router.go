// Package httpapi wires the leaderboard services into the HTTP API. Status
// code mapping lives here and nowhere else.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/admins"
	"github.com/snakegame/leaderboard/internal/config"
	"github.com/snakegame/leaderboard/internal/leaderboard"
)

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), requestLogMiddleware())

	boardSvc := leaderboard.NewService(db)
	adminSvc := admins.NewService(db, cfg.JWT, cfg.Hash.BcryptCost)

	api := r.Group("/api")

	scoreHandler := NewScoreHandler(boardSvc)
	api.GET("/scores", scoreHandler.List)
	api.POST("/scores", scoreHandler.Submit)
	api.GET("/scores/top10", scoreHandler.Top)

	api.GET("/config", GetPublicConfig)

	admin := api.Group("/admin")

	authHandler := NewAuthHandler(adminSvc)
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)

	authed := admin.Group("")
	authed.Use(adminAuthMiddleware(db, cfg.JWT))
	authed.GET("/me", authHandler.Me)

	adminScoreHandler := NewAdminScoreHandler(boardSvc)
	authed.GET("/scores/:id", adminScoreHandler.Get)
	authed.PUT("/scores/:id", adminScoreHandler.Update)
	authed.DELETE("/scores/:id", adminScoreHandler.Delete)

	settingsHandler := NewSettingsHandler(db)
	authed.PUT("/config", settingsHandler.Update)

	return r
}
