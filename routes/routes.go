package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog routes
	SetupProductRoutes(r, db)

	// JWT-protected user routes (profile, cart)
	SetupUserRoutes(r, db)

	// JWT-protected order routes
	SetupOrderRoutes(r, db)

	// Chatbot (token optional)
	SetupChatbotRoutes(r, db)

	// Admin routes (JWT + admin claim)
	SetupAdminRoutes(r, db)
}
