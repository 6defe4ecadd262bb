package monnify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"aileana/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, loginCount *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/auth/login":
			atomic.AddInt32(loginCount, 1)
			assert.NotEmpty(t, r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody": map[string]interface{}{
					"accessToken": "test-token",
					"expiresIn":   3600,
				},
			})
		case "/api/v1/merchant/transactions/init-transaction":
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody": map[string]interface{}{
					"transactionReference": "MNFY|123",
					"paymentReference":     "AIL-1",
					"checkoutUrl":          "https://checkout.monnify.test/AIL-1",
				},
			})
		case "/api/v2/merchant/transactions/query":
			assert.Equal(t, "AIL-1", r.URL.Query().Get("paymentReference"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody": map[string]interface{}{
					"paymentStatus": "PAID",
					"amountPaid":    5000,
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.MonnifyConfig{
		BaseURL:      baseURL,
		APIKey:       " 'MK_TEST' ",
		SecretKey:    "\"SECRET\"\n",
		ContractCode: "123456",
		RedirectURL:  "https://app.test/wallet",
	})
}

func TestClient_TokenIsCachedAcrossCalls(t *testing.T) {
	var logins int32
	server := newTestServer(t, &logins)
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	_, err := client.InitTransaction(ctx, InitTransactionParams{
		Amount:           decimal.NewFromInt(5000),
		CustomerName:     "Ada",
		CustomerEmail:    "ada@example.com",
		PaymentReference: "AIL-1",
	})
	require.NoError(t, err)

	status, err := client.GetTransactionStatus(ctx, "AIL-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, status.PaymentStatus)
	assert.True(t, status.AmountPaid.Equal(decimal.NewFromInt(5000)))

	assert.Equal(t, int32(1), atomic.LoadInt32(&logins), "second call must reuse the cached token")
}

func TestClient_TokenRefreshedNearExpiry(t *testing.T) {
	var logins int32
	server := newTestServer(t, &logins)
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	_, err := client.GetTransactionStatus(ctx, "AIL-1")
	require.NoError(t, err)

	// Move the clock to within the safety margin of the expiry.
	client.now = func() time.Time {
		return time.Now().Add(3600*time.Second - 10*time.Second)
	}

	_, err = client.GetTransactionStatus(ctx, "AIL-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&logins), "token near expiry must be refreshed")
}

func TestClient_InitSendsNumericAmount(t *testing.T) {
	var rawAmount json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody":      map[string]interface{}{"accessToken": "t", "expiresIn": 3600},
			})
		case "/api/v1/merchant/transactions/init-transaction":
			var body map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			rawAmount = body["amount"]
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody": map[string]interface{}{
					"transactionReference": "MNFY|123",
					"checkoutUrl":          "https://checkout.monnify.test/AIL-3",
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.InitTransaction(context.Background(), InitTransactionParams{
		Amount:           decimal.NewFromInt(5000),
		PaymentReference: "AIL-3",
	})
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`5000`), rawAmount, "amount must be a JSON number, not a quoted string")
}

func TestClient_InitRejectedSurfacesGatewayMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/auth/login" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"requestSuccessful": true,
				"responseBody":      map[string]interface{}{"accessToken": "t", "expiresIn": 3600},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"requestSuccessful": false,
			"responseMessage":   "invalid contract code",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.InitTransaction(context.Background(), InitTransactionParams{
		Amount:           decimal.NewFromInt(100),
		PaymentReference: "AIL-2",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid contract code")
}
