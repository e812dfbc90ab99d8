package forex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eklokova/connect-reports/internal/config"
	apperrors "github.com/eklokova/connect-reports/internal/errors"
)

func testClient(url string) *Client {
	return New(config.ForexConfig{URL: url, BaseCurrency: "USD", TimeoutSeconds: 5})
}

func TestChangeRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.URL.Query().Get("base"); got != "EUR" {
			t.Errorf("base query param = %q, want EUR", got)
		}
		if got := r.URL.Query().Get("symbols"); got != "USD" {
			t.Errorf("symbols query param = %q, want USD", got)
		}
		w.Write([]byte(`{"rates": {"USD": 1.0842, "GBP": 0.8571}}`))
	}))
	defer server.Close()

	rate, err := testClient(server.URL).ChangeRate(context.Background(), "EUR", "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(1.0842)) {
		t.Errorf("rate = %s, want 1.0842", rate)
	}
}

func TestChangeRateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"rates": `))
			},
		},
		{
			name: "missing base currency",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"rates": {"GBP": 0.85}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := testClient(server.URL).ChangeRate(context.Background(), "EUR", "USD")
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.IsType(err, apperrors.TypeExternalService) {
				t.Errorf("error type = %v, want %v", err, apperrors.TypeExternalService)
			}
		})
	}
}

func TestChangeRateTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).ChangeRate(context.Background(), "EUR", "USD")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !apperrors.IsType(err, apperrors.TypeExternalService) {
		t.Errorf("error type = %v, want %v", err, apperrors.TypeExternalService)
	}
}
