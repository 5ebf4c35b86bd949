package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"manovadev/config"
	"manovadev/database/postgres"
	"manovadev/httpmiddleware"
	"manovadev/logger"
	"manovadev/modelapi/deepgramapi"
	"manovadev/sarthi"
)

type TelegramConnectProps struct {
	Logger   *logger.LogMiddleware
	Config   config.TelegramConfig
	Engine   *sarthi.Engine
	Deepgram *deepgramapi.DeepgramAPI
	DB       *postgres.Database
}

// Telegram is the second chat frontend over the same Sarthi engine. Voice
// notes are transcribed before entering the pipeline.
type Telegram struct {
	logger   *logger.LogMiddleware
	bot      *tgbotapi.BotAPI
	engine   *sarthi.Engine
	deepgram *deepgramapi.DeepgramAPI
	db       *postgres.Database
}

func Connect(ctx context.Context, args TelegramConnectProps) *Telegram {
	tracer := otel.Tracer("telegram/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	if args.Config.BotToken == "" {
		args.Logger.Logger(ctx).Fatal("TELEGRAM_BOT_TOKEN not configured")
	}

	bot, err := tgbotapi.NewBotAPI(args.Config.BotToken)
	if err != nil {
		args.Logger.Logger(ctx).Fatal("Failed to create Telegram bot", zap.Error(err))
	}

	bot.Debug = args.Config.Debug

	span.SetAttributes(
		attribute.String("bot.username", bot.Self.UserName),
		attribute.Bool("bot.debug", bot.Debug),
	)

	args.Logger.Logger(ctx).Info("Telegram bot connected successfully",
		zap.String("username", bot.Self.UserName),
		zap.Bool("debug", bot.Debug),
	)

	return &Telegram{
		logger:   args.Logger,
		bot:      bot,
		engine:   args.Engine,
		deepgram: args.Deepgram,
		db:       args.DB,
	}
}

func (t *Telegram) Listen(ctx context.Context) {
	tracer := otel.Tracer("telegram/Listen")
	ctx, span := tracer.Start(ctx, "Listen")
	defer span.End()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	t.logger.Logger(ctx).Info("Starting Telegram bot message listener")

	for {
		select {
		case <-ctx.Done():
			t.logger.Logger(ctx).Info("Shutting down Telegram bot listener")
			return
		case update := <-updates:
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	tracer := otel.Tracer("telegram/handleUpdate")
	ctx, span := tracer.Start(ctx, "handleUpdate")
	defer span.End()

	switch {
	case update.Message != nil:
		t.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		t.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (t *Telegram) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	tracer := otel.Tracer("telegram/handleMessage")
	ctx, span := tracer.Start(ctx, "handleMessage")
	defer span.End()

	if message.From == nil {
		return
	}

	user := message.From
	userID := strconv.FormatInt(user.ID, 10)
	span.SetAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("user.username", user.UserName),
	)

	if err := t.db.EnsureUser(ctx, userID, user.FirstName, ""); err != nil {
		t.logger.Logger(ctx).Warn("[Telegram] Could not ensure user row", zap.Error(err))
	}

	text := message.Text
	if message.Voice != nil {
		transcribed, err := t.transcribeVoice(ctx, message.Voice.FileID)
		if err != nil {
			t.logger.Logger(ctx).Error("[Telegram] Could not transcribe voice note", zap.Error(err))
			return
		}
		text = transcribed
	}

	if text == "" {
		return
	}

	t.logger.Logger(ctx).Info("Received message",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.UserName),
		zap.Bool("voice", message.Voice != nil),
	)

	reply, err := t.engine.GenerateReply(ctx, sarthi.GenerateReplyProps{
		UserID:  userID,
		Message: text,
	})
	if err != nil {
		t.logger.Logger(ctx).Error("Failed to generate response", zap.Error(err))
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, reply.Content)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Logger(ctx).Error("Failed to send response", zap.Error(err))
	}
}

func (t *Telegram) transcribeVoice(ctx context.Context, fileID string) (string, error) {
	url, err := t.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("could not resolve voice file: %w", err)
	}

	audio, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Ctx:    ctx,
		Method: "GET",
		Url:    url,
	})
	if err != nil {
		return "", fmt.Errorf("could not download voice file: %w", err)
	}

	return t.deepgram.Transcribe(ctx, audio)
}

func (t *Telegram) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	tracer := otel.Tracer("telegram/handleCallbackQuery")
	ctx, span := tracer.Start(ctx, "handleCallbackQuery")
	defer span.End()

	if query.From == nil {
		return
	}

	span.SetAttributes(
		attribute.Int64("user.id", query.From.ID),
		attribute.String("callback.data", query.Data),
	)

	// Acknowledge the callback
	callback := tgbotapi.NewCallback(query.ID, "")
	t.bot.Send(callback)
}
