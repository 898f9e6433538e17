package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/techstore/storefront-api/controllers/order"
	"github.com/techstore/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from the caller's cart
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Fetch the caller's orders
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// Websocket endpoint for real-time order updates (admin dashboards)
		orders.GET("/ws", middleware.RequireAdmin, orderControllers.OrderWebSocketHandler)

		// Fetch a single order (owner or admin)
		orders.GET("/:orderId", orderControllers.GetOrderByIDHandler(db))
	}
}
