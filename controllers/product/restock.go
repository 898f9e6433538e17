package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

type RestockInput struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

// RestockProduct increments a product's stock, stamps the restock date and
// records a "restock" movement.
func RestockProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input RestockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userIDVal, _ := c.Get("user_id")
		byUserID, _ := userIDVal.(string)

		var product models.Product
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, id).Error; err != nil {
				return err
			}

			previousStock := product.CountInStock
			now := time.Now()
			product.CountInStock += input.Quantity
			product.LastRestockDate = &now
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			history := models.StockHistory{
				ProductID:     product.ID,
				PreviousStock: previousStock,
				NewStock:      product.CountInStock,
				ChangeType:    models.StockChangeRestock,
				Notes:         input.Notes,
				CreatedBy:     byUserID,
			}
			return tx.Create(&history).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock product"})
			}
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// GetStockHistory lists a product's stock movements, newest first.
// GET /api/admin/products/:id/stock-history
func GetStockHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var history []models.StockHistory
		if err := db.Where("product_id = ?", id).Order("created_at DESC").Find(&history).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock history"})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
