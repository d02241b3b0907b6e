package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

// GeminiClient is the concrete Completer backed by the Gemini API. Decoding
// is pinned to temperature zero with a fixed output ceiling so repeated
// audits of the same text stay as reproducible as the service allows.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient configures a generative model for deterministic decoding.
func NewGeminiClient(client *genai.Client, modelName string) *GeminiClient {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(1024)
	return &GeminiClient{model: model}
}

// Complete sends one prompt and returns the concatenated candidate text.
// Auth/config failures and blocked prompts come back as terminal errors;
// everything else is left transient for the gateway to retry.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case 400, 401, 403:
				return "", Terminal(fmt.Errorf("gemini request rejected: %w", err))
			}
		}
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", Terminal(fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
	}

	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != genai.FinishReasonUnspecified {
			log.Printf("Warning: candidate finished with reason %s", candidate.FinishReason)
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
