package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- App Builder ---
	builderGroup := router.Group("/builder")
	{
		builderGroup.POST("/generate", h.Generate) // Stateless prompt -> plan
		builderGroup.POST("/sessions", h.CreateSession)
		builderGroup.GET("/sessions", h.ListSessions)
		builderGroup.GET("/sessions/:id/messages", h.SessionMessages)
		builderGroup.POST("/sessions/:id/messages", h.AppendMessage)
		builderGroup.POST("/sessions/:id/chat", h.Chat)            // Append prompt, generate, append reply
		builderGroup.GET("/sessions/:id/transcript", h.Transcript) // OpenAI chat message format
	}

	// --- Opportunities ---
	oppGroup := router.Group("/opportunities")
	{
		oppGroup.GET("", h.ListOpportunities)
		oppGroup.POST("", h.SubmitOpportunity)
		oppGroup.GET("/featured", h.FeaturedOpportunities)
		oppGroup.POST("/featured/ensure", h.EnsureFeatured)
		oppGroup.GET("/count", h.CountOpportunities)
		oppGroup.GET("/:id", h.GetOpportunity)
	}

	// --- Profile ---
	router.GET("/profile", h.GetProfile)
	router.PUT("/profile", h.SaveProfile)

	router.GET("/health", h.Health)
}
