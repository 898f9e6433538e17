package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/techstore/storefront-api/controllers/order"
	productcontroller "github.com/techstore/storefront-api/controllers/product"
	userControllers "github.com/techstore/storefront-api/controllers/user"
	"github.com/techstore/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires a valid
// JWT with the admin claim.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Product & Inventory Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/:id/restock", productcontroller.RestockProduct(db))
			productAdmin.GET("/:id/stock-history", productcontroller.GetStockHistory(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderId/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.POST("/:orderId/notes", orderControllers.AddOrderNoteHandler(db))
		}

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.PUT("/:id", userControllers.UpdateUser(db))
			userAdmin.DELETE("/:id", userControllers.DeleteUser(db))
		}
	}
}
