package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is read once at startup and injected into every component through
// its ConnectProps. Nothing in the pipeline reads the environment at call
// time.
type Config struct {
	Port       string `env:"PORT,default=80"`
	Production bool   `env:"PRODUCTION"`

	Postgres PostgresConfig `env:",prefix=POSTGRES_DB_"`

	// Provider selects the chat-completion backend: azure, openai or gemini.
	Provider string `env:"MODEL_PROVIDER,default=azure"`

	Azure    AzureConfig    `env:",prefix=AZURE_OPENAI_"`
	OpenAI   OpenAIConfig   `env:",prefix=OPENAI_"`
	Gemini   GeminiConfig   `env:",prefix=GEMINI_"`
	Deepgram DeepgramConfig `env:",prefix=DEEPGRAM_"`
	Telegram TelegramConfig `env:",prefix=TELEGRAM_"`

	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT,default=12s"`
	MaxTokens         int           `env:"COMPLETION_MAX_TOKENS,default=1024"`
	Temperature       float64       `env:"COMPLETION_TEMPERATURE,default=0.7"`
}

type PostgresConfig struct {
	Host string `env:"HOST,default=localhost"`
	Port string `env:"PORT,default=5432"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
	Name string `env:"NAME"`
}

type AzureConfig struct {
	Endpoint   string `env:"ENDPOINT"`
	APIKey     string `env:"SECRET_KEY"`
	Deployment string `env:"DEPLOYMENT,default=gpt-4o-mini"`
	APIVersion string `env:"API_VERSION,default=2024-10-21"`
}

type OpenAIConfig struct {
	APIKey  string `env:"SECRET_KEY"`
	BaseURL string `env:"BASE_URL"`
	Model   string `env:"MODEL,default=gpt-4o-mini"`
}

type GeminiConfig struct {
	APIKey string `env:"SECRET_KEY"`
	Model  string `env:"MODEL,default=gemini-2.5-flash"`
}

type DeepgramConfig struct {
	APIKey string `env:"API_KEY"`
}

type TelegramConfig struct {
	BotToken string `env:"BOT_TOKEN"`
	Debug    bool   `env:"DEBUG"`
}

// Load reads .env (if present) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("could not process environment config: %w", err)
	}

	switch cfg.Provider {
	case "azure", "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.Provider)
	}

	return &cfg, nil
}
