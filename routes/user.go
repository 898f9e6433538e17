package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/techstore/storefront-api/controllers/cart"
	userControllers "github.com/techstore/storefront-api/controllers/user"
	"github.com/techstore/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected profile and cart endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/api/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/profile", userControllers.GetProfile(db))
	}

	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetUserCart(db))
		cart.POST("", cartControllers.AddCartItem(db))
		cart.PUT("/:productId", cartControllers.SetCartItemQuantity(db))
		cart.DELETE("/:productId", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearUserCart(db))
	}
}
