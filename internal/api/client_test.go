package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/autosell/internal/auth"
	"github.com/rickgao/autosell/internal/model"
	"github.com/rickgao/autosell/internal/version"
)

var testCreds = &auth.Credentials{APIKey: "test-key", APISecret: "test-secret"}

// fixedClock returns a constant time for deterministic signatures.
func fixedClock() time.Time {
	return time.UnixMilli(1700000000000)
}

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com/v1.1/", "https://api.example.com/v3", testCreds)

		if c.publicURL != "https://api.example.com/v1.1" {
			t.Errorf("publicURL = %q, want trailing slash trimmed", c.publicURL)
		}
		if c.privateURL != "https://api.example.com/v3" {
			t.Errorf("privateURL = %q, want %q", c.privateURL, "https://api.example.com/v3")
		}
		if c.creds != testCreds {
			t.Error("credentials not set")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
		if c.now == nil {
			t.Error("clock should not be nil")
		}
	})

	t.Run("with multiple options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		hc := &http.Client{}
		c := NewClient("https://a", "https://b", nil,
			WithHTTPClient(hc),
			WithTimeout(15*time.Second),
			WithRetries(10, 500*time.Millisecond),
			WithLogger(logger),
			WithClock(fixedClock),
		)
		if c.httpClient != hc {
			t.Error("custom HTTP client not set")
		}
		if c.httpClient.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 15*time.Second)
		}
		if c.maxRetries != 10 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 10)
		}
		if c.retryBackoff != 500*time.Millisecond {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 500*time.Millisecond)
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
		if !c.now().Equal(fixedClock()) {
			t.Error("clock not set correctly")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		if err.Error() != "bittrex api error 404: Not Found" {
			t.Errorf("Error() = %q", err.Error())
		}

		err.Code = "ORDER_NOT_OPEN"
		if err.Error() != "bittrex api error 404: Not Found (ORDER_NOT_OPEN)" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{404, false},
			{409, false},
			{200, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

// TestDoRequest tests the HTTP request functionality.
func TestDoRequest(t *testing.T) {
	t.Run("unsigned request carries no auth headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header = %q, want %q", r.Header.Get("Accept"), "application/json")
			}
			if r.Header.Get("User-Agent") != version.UserAgent() {
				t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), version.UserAgent())
			}
			if r.Header.Get(auth.HeaderAPIKey) != "" {
				t.Errorf("%s should be empty, got %q", auth.HeaderAPIKey, r.Header.Get(auth.HeaderAPIKey))
			}
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		body, err := c.doRequest(context.Background(), http.MethodGet, server.URL+"/test", nil, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"status": "ok"}` {
			t.Errorf("body = %q, want %q", string(body), `{"status": "ok"}`)
		}
	})

	t.Run("signed request shares timestamp and body with signature", func(t *testing.T) {
		reqBody := []byte(`{"marketSymbol":"ETH-BTC"}`)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ := io.ReadAll(r.Body)
			if string(got) != string(reqBody) {
				t.Errorf("body = %q, want %q", got, reqBody)
			}

			fullURL := "http://" + r.Host + r.URL.RequestURI()
			wantHash, wantSig := auth.Sign("test-secret", 1700000000000, fullURL, r.Method, got, "")

			if r.Header.Get(auth.HeaderAPIKey) != "test-key" {
				t.Errorf("%s = %q, want %q", auth.HeaderAPIKey, r.Header.Get(auth.HeaderAPIKey), "test-key")
			}
			if r.Header.Get(auth.HeaderTimestamp) != "1700000000000" {
				t.Errorf("%s = %q, want %q", auth.HeaderTimestamp, r.Header.Get(auth.HeaderTimestamp), "1700000000000")
			}
			if r.Header.Get(auth.HeaderContentHash) != wantHash {
				t.Errorf("%s mismatch", auth.HeaderContentHash)
			}
			if r.Header.Get(auth.HeaderSignature) != wantSig {
				t.Errorf("%s mismatch", auth.HeaderSignature)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", r.Header.Get("Content-Type"))
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithClock(fixedClock))
		if _, err := c.doRequest(context.Background(), http.MethodPost, server.URL+"/orders", reqBody, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("signed request without credentials", func(t *testing.T) {
		c := NewClient("http://unused", "http://unused", nil)
		_, err := c.doRequest(context.Background(), http.MethodGet, "http://unused/balances", nil, true)

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T: %v", err, err)
		}
	})

	t.Run("401 returns AuthError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"INVALID_SIGNATURE"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		_, err := c.doRequest(context.Background(), http.MethodGet, server.URL+"/balances", nil, true)

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T: %v", err, err)
		}
		if authErr.StatusCode != 401 {
			t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
		}
		if authErr.Code != "INVALID_SIGNATURE" {
			t.Errorf("Code = %q, want INVALID_SIGNATURE", authErr.Code)
		}
	})

	t.Run("auth error code on 400", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"APIKEY_INVALID"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		_, err := c.doRequest(context.Background(), http.MethodGet, server.URL+"/balances", nil, true)

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T: %v", err, err)
		}
	})

	t.Run("4xx returns TransportError wrapping APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code": "NOT_FOUND"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		_, err := c.doRequest(context.Background(), http.MethodGet, server.URL+"/test", nil, false)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T", err)
		}
		if transportErr.StatusCode() != 404 {
			t.Errorf("StatusCode() = %d, want 404", transportErr.StatusCode())
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected wrapped *APIError, got %v", err)
		}
		if apiErr.Code != "NOT_FOUND" {
			t.Errorf("Code = %q, want NOT_FOUND", apiErr.Code)
		}
		if !strings.Contains(string(apiErr.Body), "NOT_FOUND") {
			t.Errorf("Body should contain NOT_FOUND, got %q", string(apiErr.Body))
		}
	})

	t.Run("network failure returns TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		c := NewClient(url, url, testCreds)
		_, err := c.doRequest(context.Background(), http.MethodGet, url+"/test", nil, false)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T", err)
		}
		if transportErr.StatusCode() != 0 {
			t.Errorf("StatusCode() = %d, want 0", transportErr.StatusCode())
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.doRequest(ctx, http.MethodGet, server.URL+"/test", nil, false)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error should wrap context.Canceled, got %v", err)
		}
	})
}

// TestDoWithRetry tests the retry logic.
func TestDoWithRetry(t *testing.T) {
	t.Run("retries on 5xx and succeeds", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&attempts, 1)
			if n < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(3, 10*time.Millisecond))
		body, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/test", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok": true}` {
			t.Errorf("body = %q, want %q", string(body), `{"ok": true}`)
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("re-signs each attempt", func(t *testing.T) {
		var attempts int32
		var stamps []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stamps = append(stamps, r.Header.Get(auth.HeaderTimestamp))
			if atomic.AddInt32(&attempts, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		var tick int64
		clock := func() time.Time {
			tick++
			return time.UnixMilli(1700000000000 + tick)
		}

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(2, time.Millisecond), WithClock(clock))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/balances", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stamps) != 2 || stamps[0] == stamps[1] {
			t.Errorf("timestamps = %v, want two distinct values", stamps)
		}
	})

	t.Run("does not retry on 4xx", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(3, 10*time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/test", false); err == nil {
			t.Fatal("expected error, got nil")
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("does not retry auth errors", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(3, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/balances", true)

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %v", err)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(2, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/test", false)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "max retries exceeded") {
			t.Errorf("error should contain 'max retries exceeded', got %v", err)
		}

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Errorf("expected wrapped *TransportError, got %v", err)
		}
		// 1 initial + 2 retries = 3 attempts
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("negative settings are clamped", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(2, -time.Second))
		if c.retryBackoff != 0 {
			t.Errorf("retryBackoff = %v, want 0", c.retryBackoff)
		}
		if _, err := c.doWithRetry(context.Background(), http.MethodGet, server.URL+"/test", false); err == nil {
			t.Fatal("expected error, got nil")
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}

		c = NewClient(server.URL, server.URL, testCreds, WithRetries(-1, time.Millisecond))
		if c.maxRetries != 0 {
			t.Errorf("maxRetries = %d, want 0", c.maxRetries)
		}
	})

	t.Run("context cancellation during retry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(5, time.Second))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.doWithRetry(ctx, http.MethodGet, server.URL+"/test", false)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want context.DeadlineExceeded", err)
		}
	})
}

func TestGetMarkets(t *testing.T) {
	t.Run("decodes envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/public/getmarkets" {
				t.Errorf("path = %q, want /public/getmarkets", r.URL.Path)
			}
			w.Write([]byte(`{"success":true,"message":"","result":[
				{"MarketCurrency":"ETH","BaseCurrency":"BTC","MarketName":"BTC-ETH","IsActive":true,"MinTradeSize":0.015},
				{"MarketCurrency":"BTC","BaseCurrency":"USDT","MarketName":"USDT-BTC","IsActive":false,"MinTradeSize":1e-8}
			]}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, nil)
		markets, err := c.GetMarkets(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markets) != 2 {
			t.Fatalf("len(markets) = %d, want 2", len(markets))
		}

		m := markets[0]
		if m.Name != "BTC-ETH" || m.Base != "ETH" || m.Quote != "BTC" || !m.Active {
			t.Errorf("markets[0] = %+v", m)
		}
		if !m.MinTradeSize.Equal(decimal.RequireFromString("0.015")) {
			t.Errorf("MinTradeSize = %s, want 0.015", m.MinTradeSize)
		}
		if markets[1].Active {
			t.Error("markets[1].Active = true, want false")
		}
		if !markets[1].MinTradeSize.Equal(decimal.New(1, -8)) {
			t.Errorf("MinTradeSize = %s, want 0.00000001", markets[1].MinTradeSize)
		}
	})

	t.Run("unsuccessful envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"MAINTENANCE","result":null}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, nil)
		_, err := c.GetMarkets(context.Background())

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
		if !strings.Contains(err.Error(), "MAINTENANCE") {
			t.Errorf("error should mention MAINTENANCE, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway</html>`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, nil)
		_, err := c.GetMarkets(context.Background())

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
	})

	t.Run("record without name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"result":[{"MarketCurrency":"ETH","BaseCurrency":"BTC"}]}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, nil)
		_, err := c.GetMarkets(context.Background())

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected *TransportError, got %T: %v", err, err)
		}
	})
}

func TestGetTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("market") != "BTC-ETH" {
			t.Errorf("market = %q, want BTC-ETH", r.URL.Query().Get("market"))
		}
		w.Write([]byte(`{"success":true,"message":"","result":{"Bid":0.05,"Ask":0.0501,"Last":0.05005}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.URL, nil)
	ticker, err := c.GetTicker(context.Background(), "BTC-ETH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticker.Market != "BTC-ETH" {
		t.Errorf("Market = %q, want BTC-ETH", ticker.Market)
	}
	if !ticker.Bid.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("Bid = %s, want 0.05", ticker.Bid)
	}
}

func TestGetBalances(t *testing.T) {
	t.Run("signed and decoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/balances" {
				t.Errorf("path = %q, want /balances", r.URL.Path)
			}
			if r.Header.Get(auth.HeaderSignature) == "" {
				t.Error("request is not signed")
			}
			w.Write([]byte(`[
				{"currencySymbol":"ETH","total":"1.5","available":"1.25","updatedAt":"2020-01-01T00:00:00Z"},
				{"currencySymbol":"BTC","total":"0","available":"0"}
			]`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		balances, err := c.GetBalances(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(balances) != 2 {
			t.Fatalf("len(balances) = %d, want 2", len(balances))
		}
		if balances[0].Currency != "ETH" {
			t.Errorf("Currency = %q, want ETH", balances[0].Currency)
		}
		if !balances[0].Available.Equal(decimal.RequireFromString("1.25")) {
			t.Errorf("Available = %s, want 1.25", balances[0].Available)
		}
		if !balances[0].Total.Equal(decimal.RequireFromString("1.5")) {
			t.Errorf("Total = %s, want 1.5", balances[0].Total)
		}
	})

	t.Run("rejected signature", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"INVALID_SIGNATURE"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		_, err := c.GetBalances(context.Background())

		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T: %v", err, err)
		}
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("posts order body", func(t *testing.T) {
		clientID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/orders" {
				t.Errorf("request = %s %s, want POST /orders", r.Method, r.URL.Path)
			}

			var got map[string]any
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			want := map[string]any{
				"marketSymbol":  "ETH-BTC",
				"direction":     "SELL",
				"type":          "MARKET",
				"quantity":      "1.25",
				"timeInForce":   "FILL_OR_KILL",
				"clientOrderId": clientID.String(),
			}
			for k, v := range want {
				if got[k] != v {
					t.Errorf("body[%s] = %v, want %v", k, got[k], v)
				}
			}

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"order-1","marketSymbol":"ETH-BTC","direction":"SELL","quantity":"1.25","fillQuantity":"0","status":"OPEN"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds)
		status, err := c.CreateOrder(context.Background(), model.OrderRequest{
			MarketSymbol:  "ETH-BTC",
			Direction:     model.DirectionSell,
			Type:          model.OrderTypeMarket,
			TimeInForce:   model.TimeInForceFillOrKill,
			Quantity:      decimal.RequireFromString("1.25"),
			ClientOrderID: clientID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.ID != "order-1" {
			t.Errorf("ID = %q, want order-1", status.ID)
		}
		if status.IsClosed() {
			t.Error("IsClosed() = true, want false")
		}
	})

	t.Run("never retried", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.URL, testCreds, WithRetries(3, time.Millisecond))
		_, err := c.CreateOrder(context.Background(), model.OrderRequest{MarketSymbol: "ETH-BTC"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})
}

func TestGetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/order-1" {
			t.Errorf("path = %q, want /orders/order-1", r.URL.Path)
		}
		if r.Header.Get(auth.HeaderContentHash) != auth.ContentHash(nil) {
			t.Errorf("content hash should be the empty-body hash")
		}
		w.Write([]byte(`{"id":"order-1","quantity":"2","fillQuantity":"2","proceeds":"0.1","commission":"0.00025","status":"CLOSED"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.URL, testCreds)
	status, err := c.GetOrder(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.IsClosed() {
		t.Error("IsClosed() = false, want true")
	}
	if !status.FillQuantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("FillQuantity = %s, want 2", status.FillQuantity)
	}
	if !status.NetProceeds().Equal(decimal.RequireFromString("0.09975")) {
		t.Errorf("NetProceeds() = %s, want 0.09975", status.NetProceeds())
	}
}
