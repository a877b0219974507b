// Package gemini implements the Gemini-backed chat-completion and image
// generation capabilities consumed by the travel resolver and orchestrator.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"wanderbot/internal/config"
)

// Client defines the AI operations used by the destination resolver and the
// travel orchestrator. Both are optional enhancement paths: callers treat
// every error as a signal to fall back, never as a hard failure.
type Client interface {
	// Complete sends a system instruction plus user prompt and returns the
	// raw model text.
	Complete(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error)

	// GenerateImage asks the image model for a single image and returns its
	// raw bytes.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type sdkClient struct {
	genaiClient *genai.Client
	log         *slog.Logger
	modelName   string
	imageModel  string
}

// NewClient creates a new Gemini client with the provided configuration.
// Returns nil, nil when no API key is configured: the capability is simply
// absent and callers must tolerate that.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		log.Info("No Gemini API key configured, AI features disabled")
		return nil, nil
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized successfully", "model", cfg.Model, "image_model", cfg.ImageModel)
	return &sdkClient{
		genaiClient: gi,
		log:         logger,
		modelName:   cfg.Model,
		imageModel:  cfg.ImageModel,
	}, nil
}

func (c *sdkClient) Complete(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error) {
	c.log.DebugContext(ctx, "Generating completion", "model", c.modelName, "prompt_len", len(prompt))

	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}
	if systemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}}
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini completion failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return c.extractText(ctx, resp)
}

func (c *sdkClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	c.log.DebugContext(ctx, "Generating image", "model", c.imageModel, "prompt_len", len(prompt))

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.imageModel, contents, cfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini image generation failed", "error", err)
		return nil, fmt.Errorf("gemini image generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("image generation returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			c.log.DebugContext(ctx, "Image generated",
				"mime_type", part.InlineData.MIMEType, "size", len(part.InlineData.Data))
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("image generation returned no image data")
}

func (c *sdkClient) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("request blocked by safety filter: %s", reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("model returned no content, finish reason: %s", finishReason)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned empty text")
	}
	return text, nil
}
