package controllers

import (
	"net/http"

	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	ai *services.AIService
}

func NewAIController(ai *services.AIService) *AIController {
	return &AIController{ai: ai}
}

type descriptionRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Category    string `json:"category"`
}

// GenerateDescription handles POST /api/ai/generate-description.
func (ac *AIController) GenerateDescription(c *gin.Context) {
	var input descriptionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	description, err := ac.ai.GenerateDescription(c.Request.Context(), input.ProductName, input.Category)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}
