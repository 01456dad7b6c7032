package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var (
	// ErrAuth covers credential problems: missing configuration, rejected
	// credentials, or an unreachable token endpoint.
	ErrAuth = errors.New("mpesa: access token request failed")
	// ErrGateway covers STK push submission failures. No automatic retry;
	// the caller decides whether to try again.
	ErrGateway = errors.New("mpesa: stk push request failed")
)

// Config holds the Daraja credentials and endpoints. It is injected into the
// client rather than read from ambient globals so tests can point the client
// at a fake provider.
type Config struct {
	ConsumerKey       string
	ConsumerSecret    string
	BusinessShortCode string
	Passkey           string
	CallbackURL       string
	BaseURL           string
}

// LoadConfig reads the M-Pesa settings from the environment. BaseURL defaults
// to the Safaricom sandbox.
func LoadConfig() Config {
	baseURL := os.Getenv("MPESA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://sandbox.safaricom.co.ke"
	}

	return Config{
		ConsumerKey:       os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("MPESA_CONSUMER_SECRET"),
		BusinessShortCode: os.Getenv("MPESA_SHORTCODE"),
		Passkey:           os.Getenv("MPESA_PASSKEY"),
		CallbackURL:       os.Getenv("MPESA_CALLBACK_URL"),
		BaseURL:           baseURL,
	}
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// STKPushResponse is the provider's acknowledgement of a push request. The
// CheckoutRequestID correlates the later settlement callback.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// GetAccessToken exchanges the configured consumer credentials for a
// short-lived bearer token.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	if c.cfg.ConsumerKey == "" || c.cfg.ConsumerSecret == "" {
		return "", fmt.Errorf("%w: consumer key or secret is not configured", ErrAuth)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	credentials := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", ErrAuth)
	}

	return token.AccessToken, nil
}

// SubmitPushPayment issues an STK push for the given amount (whole KES) to the
// tenant's phone. The AccountReference ties the payment back to the lease.
func (c *Client) SubmitPushPayment(ctx context.Context, amount int64, phoneNumber, accountReference, token string) (*STKPushResponse, error) {
	timestamp := time.Now().UTC().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.BusinessShortCode + c.cfg.Passkey + timestamp))

	payload := stkPushRequest{
		BusinessShortCode: c.cfg.BusinessShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            phoneNumber,
		PartyB:            c.cfg.BusinessShortCode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountReference,
		TransactionDesc:   "Rent Payment",
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewBuffer(serialized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, body)
	}

	var pushResp STKPushResponse
	if err := json.Unmarshal(body, &pushResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if pushResp.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: response is missing CheckoutRequestID", ErrGateway)
	}

	return &pushResp, nil
}
