package geminiapi

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"manovadev/config"
	"manovadev/logger"
	"manovadev/modelapi"
)

const (
	maxRetries = 3
	baseDelay  = 1 * time.Second
)

type GeminiConnectProps struct {
	Logger *logger.LogMiddleware
	Config config.GeminiConfig
}

type Gemini struct {
	logger *logger.LogMiddleware
	client *genai.Client
	model  string
}

func exponentialBackoff(attempt int) time.Duration {
	return baseDelay * time.Duration(1<<uint(attempt))
}

func Connect(ctx context.Context, args GeminiConnectProps) *Gemini {
	tracer := otel.Tracer("geminiapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()
	args.Logger.Logger(ctx).Info("[GeminiAPI] Connecting Gemini API client")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  args.Config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		args.Logger.Logger(ctx).Error("[GeminiAPI] Could not create Gemini client", zap.Error(err))
		os.Exit(21)
	}

	return &Gemini{logger: args.Logger, client: client, model: args.Config.Model}
}

func (g *Gemini) Complete(ctx context.Context, req modelapi.CompletionRequest) (string, error) {
	tracer := otel.Tracer("geminiapi/Complete")
	ctx, span := tracer.Start(ctx, "Complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("request.model", g.model),
		attribute.Int("conversation_length", len(req.Messages)),
	)

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == modelapi.ASSISTANT {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	temperature := float32(req.Temperature)
	maxTokens := int32(req.MaxTokens)

	// The companion talks people through dark moments; the default safety
	// blocks would otherwise refuse exactly the crisis turns that matter.
	safetySettings := []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
	}

	var resp *genai.GenerateContentResponse
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		span.AddEvent("Attempt", trace.WithAttributes(attribute.Int("attemptNumber", attempt+1)))

		resp, err = g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemPrompt}}},
			SafetySettings:    safetySettings,
			Temperature:       &temperature,
			MaxOutputTokens:   maxTokens,
		})

		if err != nil || resp == nil || len(resp.Candidates) == 0 {
			if err != nil {
				span.RecordError(err)
				g.logger.Logger(ctx).Warn("[GeminiAPI] Error generating content, retrying",
					zap.Error(err),
					zap.Int("attempt", attempt+1),
					zap.Int("maxRetries", maxRetries))
			} else {
				g.logger.Logger(ctx).Warn("[GeminiAPI] Received empty response, retrying",
					zap.Int("attempt", attempt+1))
				span.AddEvent("EmptyResponse")
			}

			if attempt < maxRetries-1 {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(exponentialBackoff(attempt)):
				}
			}
			continue
		}

		break
	}

	if err != nil {
		g.logger.Logger(ctx).Error("[GeminiAPI] Generation failed after retries", zap.Error(err))
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no completion received")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion received")
	}

	span.AddEvent("LLM generation successful")
	return text, nil
}
