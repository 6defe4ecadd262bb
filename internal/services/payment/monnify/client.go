// Package monnify is the payment gateway adapter. The core treats the
// gateway as an untrusted, possibly-slow oracle: every call carries a
// bounded timeout and failures surface as retryable errors, never
// hangs.
package monnify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"aileana/internal/config"
)

const (
	requestTimeout = 15 * time.Second
	// tokenSafetyMargin forces a refresh shortly before the recorded
	// expiry so an in-flight request never rides an expired token.
	tokenSafetyMargin = 30 * time.Second
)

var credentialJunk = regexp.MustCompile(`[\s'"]+`)

// Client talks to the Monnify REST API. The auth token is cached
// process-wide behind a mutex: acquired lazily, reused until expiry
// minus the safety margin, refreshed on demand.
type Client struct {
	http *http.Client
	cfg  config.MonnifyConfig

	mu             sync.Mutex
	token          string
	tokenExpiresAt time.Time

	now func() time.Time
}

func NewClient(cfg config.MonnifyConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: requestTimeout},
		cfg:  cfg,
		now:  time.Now,
	}
}

func (c *Client) baseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.tokenExpiresAt.After(c.now().Add(tokenSafetyMargin)) {
		return c.token, nil
	}

	// Credentials pasted into env files tend to pick up stray quotes
	// and line breaks; strip them before building the Basic header.
	apiKey := credentialJunk.ReplaceAllString(c.cfg.APIKey, "")
	secretKey := credentialJunk.ReplaceAllString(c.cfg.SecretKey, "")
	basic := base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + secretKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL()+"/api/v2/auth/login", bytes.NewBufferString("{}"))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("monnify auth request failed: %w", err)
	}
	defer resp.Body.Close()

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("monnify auth response invalid: %w", err)
	}
	if !auth.RequestSuccessful || auth.ResponseBody.AccessToken == "" {
		return "", fmt.Errorf("monnify rejected credentials: %s", auth.ResponseMessage)
	}

	c.token = auth.ResponseBody.AccessToken
	c.tokenExpiresAt = c.now().Add(time.Duration(auth.ResponseBody.ExpiresIn) * time.Second)
	return c.token, nil
}

// InitTransaction starts a checkout session for the given payment
// reference. Safe to retry on timeout: the gateway keys the
// transaction on the reference.
func (c *Client) InitTransaction(ctx context.Context, params InitTransactionParams) (*InitTransactionResult, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	// The gateway validates amount as a JSON number; decimal's default
	// marshalling quotes it as a string, so emit the raw literal.
	payload := map[string]interface{}{
		"amount":             json.Number(params.Amount.String()),
		"customerName":       params.CustomerName,
		"customerEmail":      params.CustomerEmail,
		"paymentReference":   params.PaymentReference,
		"paymentDescription": params.PaymentDescription,
		"currencyCode":       "NGN",
		"contractCode":       credentialJunk.ReplaceAllString(c.cfg.ContractCode, ""),
		"redirectUrl":        c.cfg.RedirectURL,
		"paymentMethods":     []string{"CARD", "ACCOUNT_TRANSFER"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL()+"/api/v1/merchant/transactions/init-transaction", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("monnify init request failed: %w", err)
	}
	defer resp.Body.Close()

	var initResp initTxResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, fmt.Errorf("monnify init response invalid: %w", err)
	}
	if !initResp.RequestSuccessful {
		msg := initResp.ResponseMessage
		if msg == "" {
			msg = "transaction initialization failed"
		}
		return nil, fmt.Errorf("monnify init rejected: %s", msg)
	}

	return &InitTransactionResult{
		TransactionReference: initResp.ResponseBody.TransactionReference,
		CheckoutURL:          initResp.ResponseBody.CheckoutURL,
	}, nil
}

// GetTransactionStatus queries the gateway's current view of a
// payment by our payment reference. Idempotent.
func (c *Client) GetTransactionStatus(ctx context.Context, paymentReference string) (*TransactionStatus, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL() + "/api/v2/merchant/transactions/query?paymentReference=" +
		url.QueryEscape(paymentReference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("monnify status request failed: %w", err)
	}
	defer resp.Body.Close()

	var statusResp txStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return nil, fmt.Errorf("monnify status response invalid: %w", err)
	}
	if !statusResp.RequestSuccessful {
		return nil, fmt.Errorf("monnify status rejected: %s", statusResp.ResponseMessage)
	}

	return &TransactionStatus{
		PaymentStatus: statusResp.ResponseBody.PaymentStatus,
		AmountPaid:    statusResp.ResponseBody.AmountPaid,
	}, nil
}
