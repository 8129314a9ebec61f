package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces marketing copy for a product.
type Generator interface {
	GenerateDescription(ctx context.Context, productName, category string) (string, error)
}

// GeminiGenerator implements Generator against Google Gemini.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is missing")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}
	return &GeminiGenerator{client: client, model: "gemini-1.5-flash-latest"}, nil
}

func (g *GeminiGenerator) GenerateDescription(ctx context.Context, productName, category string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a compelling and elegant product description for a %s product named '%s' "+
			"that will be used in an eCommerce website. Keep it within 2-4 sentences and "+
			"use persuasive language.",
		category, productName,
	)

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	description := strings.TrimSpace(sb.String())
	if description == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return description, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
