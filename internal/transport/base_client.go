package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/pkg/logger"
)

// ErrorPayload is the body shape the APIs use for failures.
type ErrorPayload struct {
	Message string `json:"message"`
}

// BaseClient provides common functionality for JSON API clients
type BaseClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewBaseClient creates a base client rooted at baseURL
func NewBaseClient(baseURL string, httpClient *http.Client, lg *slog.Logger) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
		Logger:     lg,
	}
}

// DoJSON sends body (if any) as JSON and decodes a 2xx response into out.
// decoded is false when the server answered 2xx without a body. Non-2xx
// answers become an *internal.AppError carrying the server's ErrorPayload.
func (c *BaseClient) DoJSON(ctx context.Context, method, path string, body, out interface{}) (decoded bool, err error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return false, internal.NewInternalError("failed to marshal request", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return false, internal.NewInternalError("failed to create HTTP request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, internal.NewExternalError("HTTP request failed", internal.ErrCodeRequestFailed, 0).WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, internal.NewExternalError("failed to read response", internal.ErrCodeRequestFailed, resp.StatusCode).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload := decodeErrorPayload(respBody)
		c.Logger.Debug("api returned error status",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode,
			"message", payload.Message)
		return false, internal.NewRemoteError(resp.StatusCode, payload.Message).WithDetails(payload)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return false, internal.NewExternalError("failed to decode response", internal.ErrCodeDecodeFailed, resp.StatusCode).
			WithCause(fmt.Errorf("%s %s: %w", method, path, err))
	}
	return true, nil
}

func decodeErrorPayload(body []byte) ErrorPayload {
	var payload ErrorPayload
	if len(body) == 0 {
		return payload
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ErrorPayload{}
	}
	return payload
}

// ServerMessage returns the message field of a failed response, if the server sent one.
func ServerMessage(err error) (string, bool) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		return "", false
	}
	payload, ok := appErr.Details.(ErrorPayload)
	if !ok || payload.Message == "" {
		return "", false
	}
	return payload.Message, true
}
