package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// Client represents the AI gateway client. It is stateless per call: one
// attempt per request, no retry, no backoff. Failures surface immediately
// to the caller.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	config     *config.Config
}

// NewClient creates a new gateway client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: config.GatewayTimeout(),
		},
		config: config.Get(),
	}
}

// postJSON issues a JSON POST to path and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, raw, err := c.post(ctx, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postBlob issues a JSON POST to path and returns the raw response body and
// its content type. Used for capabilities that return media blobs.
func (c *Client) postBlob(ctx context.Context, path string, body interface{}) ([]byte, string, error) {
	resp, raw, err := c.post(ctx, path, body)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", decodeError(resp.StatusCode, raw)
	}

	return raw, resp.Header.Get("Content-Type"), nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*http.Response, []byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp, raw, nil
}

// decodeError turns a non-2xx body into a StatusError. A JSON body's
// `error` field is preferred, then `message`; a body that is not valid
// JSON is used verbatim as the message.
func decodeError(statusCode int, body []byte) error {
	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			return utils.NewStatusError(statusCode, structured.Error)
		}
		if structured.Message != "" {
			return utils.NewStatusError(statusCode, structured.Message)
		}
	}
	return utils.NewStatusError(statusCode, string(body))
}

// setAuthHeaders attaches the persisted session to the request.
func (c *Client) setAuthHeaders(req *http.Request) {
	if c.config.Auth.SessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Auth.SessionToken)
	}
	if c.config.Auth.UID != "" {
		req.Header.Set("X-User-Id", c.config.Auth.UID)
	}
}

// IsAuthenticated checks if the client has a persisted session
func (c *Client) IsAuthenticated() bool {
	return c.config.Auth.UID != "" && c.config.Auth.SessionToken != ""
}

// GenerateText calls the /text capability.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	var out TextResponse
	if err := c.postJSON(ctx, "/text", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateImage calls the /image capability.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	var out ImageResponse
	if err := c.postJSON(ctx, "/image", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeImage calls the /analyze capability.
func (c *Client) AnalyzeImage(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.postJSON(ctx, "/analyze", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditImage calls the /edit capability.
func (c *Client) EditImage(ctx context.Context, req EditRequest) (*ImageResponse, error) {
	var out ImageResponse
	if err := c.postJSON(ctx, "/edit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CodeAssist calls the /code capability.
func (c *Client) CodeAssist(ctx context.Context, req CodeRequest) (*CodeResponse, error) {
	var out CodeResponse
	if err := c.postJSON(ctx, "/code", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat calls the /chat capability with the full prior message history.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlanTrip calls the /trip-plan capability.
func (c *Client) PlanTrip(ctx context.Context, req TripPlanRequest) (*TripPlanResponse, error) {
	var out TripPlanResponse
	if err := c.postJSON(ctx, "/trip-plan", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TripExtra calls the /trip-extra capability.
func (c *Client) TripExtra(ctx context.Context, req TripExtraRequest) (*TripExtraResponse, error) {
	var out TripExtraResponse
	if err := c.postJSON(ctx, "/trip-extra", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateVideo calls the /video capability and returns the video blob and
// its content type.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) ([]byte, string, error) {
	return c.postBlob(ctx, "/video", req)
}

// Synthesize calls the /tts capability and returns the audio blob and its
// content type.
func (c *Client) Synthesize(ctx context.Context, req TTSRequest) ([]byte, string, error) {
	return c.postBlob(ctx, "/tts", req)
}

// Transcribe calls the /transcribe capability.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResponse, error) {
	var out TranscribeResponse
	if err := c.postJSON(ctx, "/transcribe", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Multimodal calls the /multimodal capability with ordered media parts.
func (c *Client) Multimodal(ctx context.Context, req MultimodalRequest) (*MultimodalResponse, error) {
	var out MultimodalResponse
	if err := c.postJSON(ctx, "/multimodal", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoiceChat calls the /voice-chat capability.
func (c *Client) VoiceChat(ctx context.Context, req VoiceChatRequest) (*VoiceChatResponse, error) {
	var out VoiceChatResponse
	if err := c.postJSON(ctx, "/voice-chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload pushes an asset (avatar photo) to the gateway and returns its URL.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	var out UploadResponse
	if err := c.postJSON(ctx, "/upload", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates the user and persists the session information.
// Provider error codes are mapped to fixed human-readable messages.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, translateAuthError(err)
	}

	if err := config.UpdateAuth(out.Email, out.UID, out.DisplayName, out.SessionToken); err != nil {
		return nil, fmt.Errorf("failed to save authentication info: %w", err)
	}
	c.config = config.Get()

	return &out, nil
}

// Register creates a new account and persists the session information.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*AuthResponse, error) {
	var out AuthResponse
	req := RegisterRequest{Email: email, Password: password, DisplayName: displayName}
	if err := c.postJSON(ctx, "/auth/register", req, &out); err != nil {
		return nil, translateAuthError(err)
	}

	if err := config.UpdateAuth(out.Email, out.UID, out.DisplayName, out.SessionToken); err != nil {
		return nil, fmt.Errorf("failed to save authentication info: %w", err)
	}
	c.config = config.Get()

	return &out, nil
}

// Logout ends the current session remotely and clears the persisted one.
func (c *Client) Logout(ctx context.Context) error {
	if c.config.Auth.SessionToken == "" {
		return fmt.Errorf("not logged in")
	}

	if err := c.postJSON(ctx, "/auth/logout", struct{}{}, nil); err != nil {
		return err
	}

	return config.ClearAuth()
}

// SendTwoFactor asks the gateway to deliver a verification code to the
// account's registered channel. The client never displays the code.
func (c *Client) SendTwoFactor(ctx context.Context, email, code string) error {
	return c.postJSON(ctx, "/auth/2fa/send", TwoFactorSendRequest{Email: email, Code: code}, nil)
}

// translateAuthError rewrites mapped provider error codes into fixed
// human-readable strings, leaving everything else untouched.
func translateAuthError(err error) error {
	var se *utils.StatusError
	if errors.As(err, &se) {
		if msg := utils.AuthMessage(se.Message); msg != se.Message {
			return utils.NewStatusError(se.StatusCode, msg)
		}
	}
	return err
}
