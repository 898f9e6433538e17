package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name              string  `json:"name" binding:"required"`
	Image             string  `json:"image"`
	Brand             string  `json:"brand"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	Rating            float64 `json:"rating"`
	Price             float64 `json:"price" binding:"required,gte=0"`
	CountInStock      int     `json:"countInStock" binding:"gte=0"`
	LowStockThreshold *int    `json:"lowStockThreshold"`
	ReorderPoint      *int    `json:"reorderPoint"`
}

// CreateProduct creates a new catalog product. Stock status is derived on
// save, never taken from the request.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:              input.Name,
			Image:             input.Image,
			Brand:             input.Brand,
			Category:          input.Category,
			Description:       input.Description,
			Rating:            input.Rating,
			Price:             input.Price,
			CountInStock:      input.CountInStock,
			LowStockThreshold: 10,
			ReorderPoint:      5,
		}
		if input.LowStockThreshold != nil {
			product.LowStockThreshold = *input.LowStockThreshold
		}
		if input.ReorderPoint != nil {
			product.ReorderPoint = *input.ReorderPoint
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
