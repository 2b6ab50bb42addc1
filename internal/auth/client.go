package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/mudithakuruppu/employeemanagement-ui/internal/transport"
)

const (
	loginPath  = "/auth/login"
	signupPath = "/auth/signup"

	loginFailedMessage  = "Login failed"
	signupFailedMessage = "Signup failed"
)

// Client exchanges credentials for a session token.
type Client struct {
	*transport.BaseClient
}

func NewClient(base *transport.BaseClient) *Client {
	return &Client{BaseClient: base}
}

func NewClientFromURL(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return NewClient(transport.NewBaseClient(baseURL, httpClient, logger))
}

func (c *Client) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return c.exchange(ctx, loginPath, dto, loginFailedMessage, internal.ErrCodeLoginFailed)
}

func (c *Client) Signup(ctx context.Context, dto SignupDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return c.exchange(ctx, signupPath, dto, signupFailedMessage, internal.ErrCodeSignupFailed)
}

// exchange posts credentials. A failure carries the server's message verbatim
// when there is one, fallback otherwise.
func (c *Client) exchange(ctx context.Context, path string, body interface{}, fallback string, code internal.ErrorCode) (*AuthResponse, error) {
	var resp AuthResponse
	decoded, err := c.DoJSON(ctx, http.MethodPost, path, body, &resp)
	if err != nil {
		message := fallback
		if serverMessage, ok := transport.ServerMessage(err); ok {
			message = serverMessage
		}
		status := 0
		errType := internal.ErrorTypeExternal
		if appErr, ok := internal.IsAppError(err); ok {
			status = appErr.StatusCode
			errType = appErr.Type
		}
		c.Logger.Warn("authentication failed", "path", path, "status_code", status, "error", err)
		// no Cause: Error() must read exactly as the message shown to the user
		return nil, &internal.AppError{
			Type:       errType,
			Code:       code,
			Message:    message,
			StatusCode: status,
		}
	}
	if !decoded || resp.Token == "" {
		c.Logger.Warn("authentication response carried no token", "path", path)
		return nil, internal.NewExternalError(fallback, code, http.StatusOK)
	}

	c.Logger.Info("authenticated", "user_id", resp.User.ID)
	return &resp, nil
}
