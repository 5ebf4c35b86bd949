package httpmiddleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HttpRequestStruct struct {
	Ctx     context.Context
	Method  string
	Url     string
	Body    io.Reader
	Headers map[string]string
}

var client = &http.Client{Timeout: 60 * time.Second}

// HttpRequest performs a single outbound request and returns the raw body.
// The request is bound to args.Ctx so a caller's deadline or cancellation
// aborts it in flight. Non-2xx statuses are returned as errors so callers
// can drive their own retry loops.
func HttpRequest(args HttpRequestStruct) ([]byte, error) {
	ctx := args.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, args.Method, args.Url, args.Body)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}

	for key, value := range args.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
