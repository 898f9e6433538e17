package chatbotController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

// Products rated at or above this show up in the featured-products intent.
const featuredRatingFloor = 4.5

type queryRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandleChatbotQuery resolves one chat message. Faults before the resolver
// runs map to a generic apology; the resolver itself always returns a valid
// reply shape.
func HandleChatbotQuery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req queryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, Reply{
				Text:    "I apologize, but I'm having trouble processing your request. Please try again later or contact our support team.",
				Buttons: []string{},
			})
			return
		}

		_, isAuthenticated := c.Get("user_id")

		reply := Resolve(req.Message, isAuthenticated, func() ([]models.Product, error) {
			var products []models.Product
			err := db.Where("rating >= ?", featuredRatingFloor).Find(&products).Error
			return products, err
		})
		c.JSON(http.StatusOK, reply)
	}
}
