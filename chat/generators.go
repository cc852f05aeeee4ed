package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/bedrock"
)

// BedrockGenerator answers prompts through an AWS Bedrock text model. AWS
// credentials and region come from the standard SDK environment.
type BedrockGenerator struct {
	model llms.Model
}

func NewBedrockGenerator(modelID string) (*BedrockGenerator, error) {
	model, err := bedrock.New(bedrock.WithModel(modelID))
	if err != nil {
		return nil, fmt.Errorf("failed to create bedrock client: %w", err)
	}
	return &BedrockGenerator{model: model}, nil
}

func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithMaxTokens(512),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("bedrock generation failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

var contextTitlePattern = regexp.MustCompile(`(?m)^\[\d+\] (.+)$`)

// MockGenerator produces a templated answer naming the context titles found
// in the prompt. It never fails, so it terminates the generation fallback
// chain.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	matches := contextTitlePattern.FindAllStringSubmatch(prompt, -1)
	if len(matches) == 0 {
		return "I could not find relevant articles for that question. Try rephrasing or ingest more content first.", nil
	}

	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, m[1])
	}
	return fmt.Sprintf(
		"Based on the indexed articles (%s), here is what the collection covers. "+
			"This is a generated placeholder answer; connect a text model for full responses.",
		strings.Join(titles, ", ")), nil
}
