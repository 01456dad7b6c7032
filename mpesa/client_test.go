package mpesa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		ConsumerKey:       "key",
		ConsumerSecret:    "secret",
		BusinessShortCode: "174379",
		Passkey:           "passkey",
		CallbackURL:       "https://example.com/mpesa/callback",
		BaseURL:           baseURL,
	}
}

func TestGetAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/v1/generate", r.URL.Path)
		require.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key", user)
		require.Equal(t, "secret", pass)

		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token-123",
			"expires_in":   "3599",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	token, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-123", token)
}

func TestGetAccessTokenRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.GetAccessToken(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestGetAccessTokenMissingCredentials(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.ConsumerKey = ""

	client := NewClient(cfg)
	_, err := client.GetAccessToken(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestSubmitPushPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mpesa/stkpush/v1/processrequest", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req stkPushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, int64(5000), req.Amount)
		require.Equal(t, "254712345678", req.PhoneNumber)
		require.Equal(t, "1", req.AccountReference)
		require.NotEmpty(t, req.Password)
		require.NotEmpty(t, req.Timestamp)

		json.NewEncoder(w).Encode(STKPushResponse{
			MerchantRequestID: "29115-34620561-1",
			CheckoutRequestID: "ws_CO_123",
			ResponseCode:      "0",
			CustomerMessage:   "Success. Request accepted for processing",
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	resp, err := client.SubmitPushPayment(context.Background(), 5000, "254712345678", "1", "token-123")
	require.NoError(t, err)
	require.Equal(t, "ws_CO_123", resp.CheckoutRequestID)
	require.Equal(t, "Success. Request accepted for processing", resp.CustomerMessage)
}

func TestSubmitPushPaymentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorCode":"400.002.02","errorMessage":"Bad Request - Invalid Amount"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.SubmitPushPayment(context.Background(), 0, "254712345678", "1", "token-123")
	require.ErrorIs(t, err, ErrGateway)
}
