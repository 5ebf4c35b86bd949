package azureapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"manovadev/config"
	"manovadev/httpmiddleware"
	"manovadev/logger"
	"manovadev/modelapi"
)

const (
	maxRetries = 2
	baseDelay  = 1 * time.Second
)

type ChatRequestInput struct {
	Messages    []modelapi.ChatMessage `json:"messages"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
}

type AzureResponse struct {
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AzureConnectProps struct {
	Logger *logger.LogMiddleware
	Config config.AzureConfig
}

// Azure talks to an Azure OpenAI chat-completions deployment over its REST
// surface. Outbound calls are capped by a semaphore so one busy turn cannot
// starve the rest.
type Azure struct {
	logger    *logger.LogMiddleware
	semaphore *semaphore.Weighted
	cfg       config.AzureConfig
}

func Connect(ctx context.Context, args AzureConnectProps) *Azure {
	tracer := otel.Tracer("azureapi/Connect")
	_, span := tracer.Start(ctx, "Connect")
	defer span.End()

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))

	span.SetAttributes(
		attribute.Int("maxWorkers", maxWorkers),
		attribute.String("deployment", args.Config.Deployment),
	)

	return &Azure{logger: args.Logger, semaphore: sem, cfg: args.Config}
}

func getBackoffDelay(attempt int) time.Duration {
	return baseDelay * time.Duration(1<<uint(attempt))
}

func (a *Azure) Complete(ctx context.Context, req modelapi.CompletionRequest) (string, error) {
	tracer := otel.Tracer("azureapi/Complete")
	ctx, span := tracer.Start(ctx, "Complete")
	defer span.End()

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		a.cfg.Endpoint, a.cfg.Deployment, a.cfg.APIVersion)

	span.SetAttributes(
		attribute.String("deployment", a.cfg.Deployment),
		attribute.Int("request.max_tokens", req.MaxTokens),
	)

	messages := make([]modelapi.ChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, modelapi.ChatMessage{Role: modelapi.SYSTEM, Content: req.SystemPrompt})
	messages = append(messages, req.Messages...)

	jsonData, err := json.Marshal(ChatRequestInput{
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("could not generate request body: %w", err)
	}

	if err := a.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer a.semaphore.Release(1)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		respBody, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
			Ctx:    ctx,
			Method: "POST",
			Url:    url,
			Body:   bytes.NewBuffer(jsonData),
			Headers: map[string]string{
				"api-key":      a.cfg.APIKey,
				"content-type": "application/json",
			},
		})
		if err != nil {
			lastErr = err
			span.RecordError(err)
			a.logger.Logger(ctx).Error("[Azure-API] Request failed",
				zap.Error(err),
				zap.Int("attempt", attempt+1),
			)
		} else {
			var parsed AzureResponse
			parseErr := json.Unmarshal(respBody, &parsed)
			if parseErr == nil && len(parsed.Choices) > 0 {
				span.AddEvent("Request successful")
				return parsed.Choices[0].Message.Content, nil
			}
			if parseErr == nil {
				parseErr = fmt.Errorf("completion response had no choices")
			}
			lastErr = parseErr
			span.RecordError(parseErr)
			a.logger.Logger(ctx).Error("[Azure-API] Could not parse response",
				zap.Error(parseErr),
				zap.Int("attempt", attempt+1),
				zap.String("response_body", string(respBody)),
			)
		}

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(getBackoffDelay(attempt)):
			}
		}
	}

	span.AddEvent("All retries exhausted")
	return "", fmt.Errorf("azure completion failed: %w", lastErr)
}
