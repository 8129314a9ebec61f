package services

import (
	"context"
	"strings"

	"jewels-backend/pkg/ai"
	apperrors "jewels-backend/pkg/errors"
)

// AIService generates marketing copy for products.
type AIService struct {
	generator ai.Generator
}

func NewAIService(generator ai.Generator) *AIService {
	return &AIService{generator: generator}
}

// GenerateDescription produces a product description. An empty category
// falls back to "jewelry".
func (s *AIService) GenerateDescription(ctx context.Context, productName, category string) (string, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "", apperrors.Validation("Product name is required")
	}
	if strings.TrimSpace(category) == "" {
		category = "jewelry"
	}

	description, err := s.generator.GenerateDescription(ctx, productName, category)
	if err != nil {
		return "", apperrors.Dependency("AI generation failed", err)
	}
	return description, nil
}
