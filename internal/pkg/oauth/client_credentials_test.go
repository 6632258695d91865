package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorizationEcho(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Authorization")))
	}))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestNewHTTPClient(t *testing.T) {
	api := authorizationEcho(t)

	t.Run("no credentials", func(t *testing.T) {
		base := &http.Client{Timeout: time.Second}
		client := NewHTTPClient(context.Background(), config.UpstreamConfig{}, base)
		assert.Same(t, base, client)
		assert.Equal(t, "", get(t, client, api.URL))
	})

	t.Run("static token", func(t *testing.T) {
		client := NewHTTPClient(context.Background(), config.UpstreamConfig{Token: "static-token", Timeout: time.Second}, nil)
		assert.Equal(t, "Bearer static-token", get(t, client, api.URL))
		assert.Equal(t, time.Second, client.Timeout)
	})

	t.Run("client credentials", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "issued-token", "token_type": "bearer", "expires_in": 3600}`))
		}))
		defer tokenServer.Close()

		cfg := config.UpstreamConfig{
			ClientID:     "duty-report",
			ClientSecret: "secret",
			TokenURL:     tokenServer.URL,
			Token:        "ignored",
			Timeout:      time.Second,
		}
		client := NewHTTPClient(context.Background(), cfg, nil)
		assert.Equal(t, "Bearer issued-token", get(t, client, api.URL))
	})
}
