package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs"
	sdk "github.com/hyperdxio/opentelemetry-logs-go/sdk/logs"
	"github.com/hyperdxio/otel-config-go/otelconfig"

	"manovadev/config"
	"manovadev/database/postgres"
	"manovadev/httpserver"
	"manovadev/logger"
	"manovadev/modelapi"
	"manovadev/modelapi/azureapi"
	"manovadev/modelapi/deepgramapi"
	"manovadev/modelapi/geminiapi"
	"manovadev/modelapi/openaiapi"
	"manovadev/sarthi"
	"manovadev/telegram"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading configuration - %v", err)
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		log.Fatalf("Error setting up OTel SDK - %e", err)
	}
	defer otelShutdown()

	logExporter, _ := otlplogs.NewExporter(ctx)
	loggerProvider := sdk.NewLoggerProvider(sdk.WithBatcher(logExporter))
	defer loggerProvider.Shutdown(ctx)

	LogMiddleware := logger.Connect(logger.LoggerConnectProps{Production: cfg.Production, LoggerProvider: loggerProvider})
	Logger := LogMiddleware.Logger(ctx)

	db := postgres.Connect(ctx, postgres.DatabaseConnectProps{Logger: LogMiddleware, Config: cfg.Postgres})

	var provider modelapi.CompletionProvider
	switch cfg.Provider {
	case "gemini":
		provider = geminiapi.Connect(ctx, geminiapi.GeminiConnectProps{Logger: LogMiddleware, Config: cfg.Gemini})
	case "openai":
		provider = openaiapi.Connect(ctx, openaiapi.OpenAIConnectProps{Logger: LogMiddleware, Config: cfg.OpenAI})
	default:
		provider = azureapi.Connect(ctx, azureapi.AzureConnectProps{Logger: LogMiddleware, Config: cfg.Azure})
	}

	gateway := sarthi.ConnectContextGateway(sarthi.ContextGatewayConnectProps{
		Logger:        LogMiddleware,
		Conversations: db,
		Moods:         db,
		Checkins:      db,
		Profiles:      db,
	})

	engine := sarthi.ConnectEngine(sarthi.EngineConnectProps{
		Logger:            LogMiddleware,
		Gateway:           gateway,
		Provider:          provider,
		CompletionTimeout: cfg.CompletionTimeout,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       cfg.Temperature,
	})

	server := httpserver.Connect(httpserver.HttpServerConnectProps{
		Logger: LogMiddleware,
		Engine: engine,
		DB:     db,
	})

	serveCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Telegram.BotToken != "" {
		deepgramClient := deepgramapi.Connect(LogMiddleware, cfg.Deepgram)
		telegramBot := telegram.Connect(ctx, telegram.TelegramConnectProps{
			Logger:   LogMiddleware,
			Config:   cfg.Telegram,
			Engine:   engine,
			Deepgram: deepgramClient,
			DB:       db,
		})
		go telegramBot.Listen(serveCtx)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: otelhttp.NewHandler(server.Router(), "manova-backend"),
	}

	go func() {
		<-serveCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	if cfg.Production == false {
		Logger.Info("[Server] Starting in development mode", zap.String("port", cfg.Port))
	} else {
		Logger.Info("[Server] Starting in production mode", zap.String("port", cfg.Port))
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		Logger.Fatal("[Server] HTTP server failed", zap.Error(err))
	}
}
