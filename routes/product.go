package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/techstore/storefront-api/controllers/product"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/top", productcontroller.GetTopProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
}
