package sarthi

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"manovadev/logger"
	"manovadev/modelapi"
)

const defaultRecentMessageLimit = 4

type EngineConnectProps struct {
	Logger   *logger.LogMiddleware
	Gateway  *ContextGateway
	Provider modelapi.CompletionProvider

	// CompletionTimeout caps one model call; the turn makes at most two.
	CompletionTimeout time.Duration
	MaxTokens         int
	Temperature       float64
}

// Engine runs one chat turn end to end: recall context, classify, pick a
// strategy, compose the prompt, call the model, run the critic, persist the
// exchange.
type Engine struct {
	logger   *logger.LogMiddleware
	gateway  *ContextGateway
	provider modelapi.CompletionProvider

	classifier *LanguageClassifier
	analyzer   *EmotionalStateAnalyzer
	composer   *PromptComposer
	critic     *ResponseCritic

	completionTimeout time.Duration
	maxTokens         int
	temperature       float64
}

func ConnectEngine(args EngineConnectProps) *Engine {
	timeout := args.CompletionTimeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	maxTokens := args.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Engine{
		logger:            args.Logger,
		gateway:           args.Gateway,
		provider:          args.Provider,
		classifier:        NewLanguageClassifier(),
		analyzer:          NewEmotionalStateAnalyzer(),
		composer:          NewPromptComposer(),
		critic:            NewResponseCritic(),
		completionTimeout: timeout,
		maxTokens:         maxTokens,
		temperature:       args.Temperature,
	}
}

type GenerateReplyProps struct {
	UserID  string
	Message string

	// LanguageOverride pins the reply language, bypassing detection.
	LanguageOverride Language
}

// GenerateReply never fails for business reasons. When the model cannot be
// reached at all it returns the fixed in-character apology, so the caller
// always has something safe to show.
func (e *Engine) GenerateReply(ctx context.Context, args GenerateReplyProps) (*Reply, error) {
	tracer := otel.Tracer("sarthi/GenerateReply")
	ctx, span := tracer.Start(ctx, "GenerateReply")
	defer span.End()

	log := e.logger.Logger(ctx)

	cc := e.gateway.Gather(ctx, args.UserID, defaultRecentMessageLimit)

	detection := e.detectLanguage(args, cc)
	assessment := e.analyzer.Analyze(args.Message)
	strategy := SelectStrategy(assessment)

	span.SetAttributes(
		attribute.String("user.id", args.UserID),
		attribute.String("language", string(detection.Language)),
		attribute.Bool("language.switched", detection.Switched),
		attribute.String("emotion", string(assessment.PrimaryEmotion)),
		attribute.String("intensity", string(assessment.Intensity)),
		attribute.String("strategy", string(strategy)),
	)

	log.Info("[Sarthi] Assessed chat turn",
		zap.String("user_id", args.UserID),
		zap.String("language", string(detection.Language)),
		zap.String("emotion", string(assessment.PrimaryEmotion)),
		zap.String("strategy", string(strategy)),
	)

	prompt := e.composer.Compose(ComposeProps{
		Strategy:   strategy,
		Assessment: assessment,
		Context:    cc,
		Language:   detection.Language,
		Switched:   detection.Switched,
	})

	candidate, err := e.completeWithRetry(ctx, prompt, args.Message)
	if err != nil {
		span.RecordError(err)
		log.Error("[Sarthi] Model unavailable, returning fallback apology", zap.Error(err))
		return &Reply{Content: FallbackApology(detection.Language), Language: detection.Language}, nil
	}

	verdict := e.critic.Evaluate(candidate, detection.Language)
	if verdict.Flagged() {
		span.AddEvent("Critic flagged candidate", otelVerdictAttrs(verdict))
		log.Info("[Sarthi] Critic flagged candidate, regenerating once",
			zap.Bool("is_generic", verdict.IsGeneric),
			zap.Bool("is_wrong_language", verdict.IsWrongLanguage),
		)

		corrected := prompt + "\n\n" + e.critic.BuildCorrection(detection.Language)
		regenerated, regenErr := e.complete(ctx, corrected, args.Message)
		if regenErr == nil && strings.TrimSpace(regenerated) != "" {
			// Second output is accepted unconditionally; no further loops.
			candidate = regenerated
		}
	}

	e.persistExchange(ctx, args.UserID, args.Message, candidate)

	return &Reply{Content: candidate, Language: detection.Language}, nil
}

func (e *Engine) detectLanguage(args GenerateReplyProps, cc ConversationContext) Detection {
	if args.LanguageOverride != "" {
		return Detection{Language: args.LanguageOverride}
	}

	if pref := parseLanguagePreference(cc.Profile.LanguagePreference); pref != "" {
		return Detection{Language: pref}
	}

	var history []string
	for _, m := range cc.RecentMessages {
		if m.Role == RoleUser {
			history = append(history, m.Content)
		}
	}
	return e.classifier.Classify(args.Message, history)
}

func parseLanguagePreference(pref string) Language {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "hindi", "hi":
		return LanguageHindi
	case "hinglish", "hi-latn":
		return LanguageHinglish
	case "english", "en":
		return LanguageEnglish
	default:
		return ""
	}
}

// completeWithRetry makes at most two attempts with the same prompt. This
// retry covers infrastructure failures only; the critic's corrective
// regeneration is a separate, also-single retry.
func (e *Engine) completeWithRetry(ctx context.Context, prompt, userMessage string) (string, error) {
	candidate, err := e.complete(ctx, prompt, userMessage)
	if err == nil {
		return candidate, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	e.logger.Logger(ctx).Warn("[Sarthi] Model call failed, retrying once", zap.Error(err))
	return e.complete(ctx, prompt, userMessage)
}

// complete sends a single user turn; earlier turns already appear in the
// system prompt, so repeating them here would feed the model the history
// twice.
func (e *Engine) complete(ctx context.Context, prompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.completionTimeout)
	defer cancel()

	return e.provider.Complete(ctx, modelapi.CompletionRequest{
		SystemPrompt: prompt,
		Messages:     []modelapi.ChatMessage{{Role: modelapi.USER, Content: userMessage}},
		MaxTokens:    e.maxTokens,
		Temperature:  e.temperature,
	})
}

func otelVerdictAttrs(v Verdict) trace.EventOption {
	return trace.WithAttributes(
		attribute.Bool("critic.is_generic", v.IsGeneric),
		attribute.Bool("critic.is_wrong_language", v.IsWrongLanguage),
	)
}

// persistExchange appends the turn to the conversation log, best effort.
func (e *Engine) persistExchange(ctx context.Context, userID, userMessage, reply string) {
	store := e.gateway.conversations
	if store == nil {
		return
	}
	if err := store.AppendMessage(ctx, userID, RoleUser, userMessage); err != nil {
		e.logger.Logger(ctx).Warn("[Sarthi] Could not persist user message", zap.Error(err))
		return
	}
	if err := store.AppendMessage(ctx, userID, RoleAssistant, reply); err != nil {
		e.logger.Logger(ctx).Warn("[Sarthi] Could not persist assistant message", zap.Error(err))
	}
}
