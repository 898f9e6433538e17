package routes

import (
	"github.com/gin-gonic/gin"
	chatbotController "github.com/techstore/storefront-api/controllers/chatbot"
	"github.com/techstore/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupChatbotRoutes registers the chat endpoint. The token is optional so
// the resolver can answer anonymous visitors and still detect expired
// sessions on the track-order intent.
func SetupChatbotRoutes(r *gin.Engine, db *gorm.DB) {
	chatbot := r.Group("/api/chatbot")
	chatbot.Use(middleware.OptionalToken)
	{
		chatbot.POST("", chatbotController.HandleChatbotQuery(db))
	}
}
