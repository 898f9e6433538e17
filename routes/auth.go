package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/techstore/storefront-api/auth"
	"github.com/techstore/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.GET("/profile", middleware.ValidateToken, auth.ProfileHandler(db))
	}
}
