package azureapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"manovadev/config"
	"manovadev/logger"
	"manovadev/modelapi"
)

func newTestAzure(t *testing.T, endpoint string) *Azure {
	t.Helper()
	return Connect(context.Background(), AzureConnectProps{
		Logger: logger.Connect(logger.LoggerConnectProps{}),
		Config: config.AzureConfig{
			Endpoint:   endpoint,
			APIKey:     "test-key",
			Deployment: "gpt-4o-mini",
			APIVersion: "2024-10-21",
		},
	})
}

func TestCompleteParsesChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("api-key"))
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"arre, kya haal hai"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	az := newTestAzure(t, srv.URL)
	content, err := az.Complete(context.Background(), modelapi.CompletionRequest{
		SystemPrompt: "persona",
		Messages:     []modelapi.ChatMessage{{Role: modelapi.USER, Content: "hi"}},
		MaxTokens:    64,
	})
	require.NoError(t, err)
	require.Equal(t, "arre, kya haal hai", content)
}

func TestCompleteReturnsPromptlyOnExpiredDeadline(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()

	az := newTestAzure(t, slow.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := az.Complete(ctx, modelapi.CompletionRequest{
		SystemPrompt: "persona",
		Messages:     []modelapi.ChatMessage{{Role: modelapi.USER, Content: "hi"}},
		MaxTokens:    64,
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Less(t, elapsed, time.Second, "an expired deadline must abort the in-flight request, not wait it out")
}
