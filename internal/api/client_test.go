package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field preferred", `{"error":"quota exceeded","message":"ignored"}`, "quota exceeded"},
		{"message field fallback", `{"message":"bad input"}`, "bad input"},
		{"non-JSON body verbatim", "502 Bad Gateway", "502 Bad Gateway"},
		{"empty JSON object falls through", `{}`, `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeError(http.StatusBadGateway, []byte(tc.body))
			require.EqualError(t, err, tc.want)

			var se *utils.StatusError
			require.ErrorAs(t, err, &se)
			require.Equal(t, http.StatusBadGateway, se.StatusCode)
		})
	}
}

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/text", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"prompt":"hi"}`, string(body))

		w.Write([]byte(`{"result":"hello"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Result)
}

func TestGatewayErrorSurfacesVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit hit, retry later"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	require.EqualError(t, err, "rate limit hit, retry later")

	var se *utils.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestAuthHeaders(t *testing.T) {
	cfg := config.Get()
	prev := cfg.Auth
	cfg.Auth.SessionToken = "tok-123"
	cfg.Auth.UID = "u1"
	t.Cleanup(func() { cfg.Auth = prev })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.Equal(t, "u1", r.Header.Get("X-User-Id"))
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.True(t, c.IsAuthenticated())

	_, err := c.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	require.NoError(t, err)
}

func TestGenerateVideoReturnsBlob(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/video", r.URL.Path)
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, contentType, err := c.GenerateVideo(context.Background(), VideoRequest{Prompt: "p", AspectRatio: "16:9"})
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Equal(t, "video/mp4", contentType)
}

func TestLoginTranslatesProviderCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid-credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	require.EqualError(t, err, "Invalid email or password")
	require.True(t, utils.IsAuthError(err))
}

func TestLoginLeavesUnmappedErrorsAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance window"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.EqualError(t, err, "maintenance window")
}

func TestSendTwoFactor(t *testing.T) {
	var got TwoFactorSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/2fa/send", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.SendTwoFactor(context.Background(), "ada@example.com", "123456"))
	require.Equal(t, "ada@example.com", got.Email)
	require.Equal(t, "123456", got.Code)
}

func TestLogoutRequiresSession(t *testing.T) {
	cfg := config.Get()
	prev := cfg.Auth
	cfg.Auth = config.AuthConfig{}
	t.Cleanup(func() { cfg.Auth = prev })

	c := NewClient("http://unreachable.invalid")
	require.EqualError(t, c.Logout(context.Background()), "not logged in")
}
