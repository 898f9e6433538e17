package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name              *string  `json:"name"`
	Image             *string  `json:"image"`
	Brand             *string  `json:"brand"`
	Category          *string  `json:"category"`
	Description       *string  `json:"description"`
	Rating            *float64 `json:"rating"`
	Price             *float64 `json:"price"`
	CountInStock      *int     `json:"countInStock"`
	LowStockThreshold *int     `json:"lowStockThreshold"`
	ReorderPoint      *int     `json:"reorderPoint"`
}

// UpdateProduct applies a partial update. A manual stock change is recorded
// as an "adjustment" movement; the status hook recomputes stockStatus.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		previousStock := product.CountInStock
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Rating != nil {
			product.Rating = *input.Rating
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.CountInStock != nil {
			product.CountInStock = *input.CountInStock
		}
		if input.LowStockThreshold != nil {
			product.LowStockThreshold = *input.LowStockThreshold
		}
		if input.ReorderPoint != nil {
			product.ReorderPoint = *input.ReorderPoint
		}

		userIDVal, _ := c.Get("user_id")
		byUserID, _ := userIDVal.(string)

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			if product.CountInStock != previousStock {
				history := models.StockHistory{
					ProductID:     product.ID,
					PreviousStock: previousStock,
					NewStock:      product.CountInStock,
					ChangeType:    models.StockChangeAdjustment,
					Notes:         "manual stock adjustment",
					CreatedBy:     byUserID,
				}
				if err := tx.Create(&history).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
