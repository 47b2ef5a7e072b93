package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"storefront/internal/pkg/httpclient"
	"storefront/internal/service/order/domain/port"
)

func testPaymentDetails() port.PaymentDetails {
	return port.PaymentDetails{CardNumber: "4111-1111-1111-1111", CardOwner: "Jane Doe", Checksum: "42"}
}

func TestCharge_PostsPaymentRequest(t *testing.T) {
	var got paymentRequest
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := NewPaymentHTTPAdapter(httpclient.NewClient(otel.Tracer("test")), server.URL, time.Second, true)
	require.NoError(t, adapter.Charge(context.Background(), testPaymentDetails(), 12.5))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "Jane Doe", got.CardOwner)
	assert.InDelta(t, 12.5, got.Total, 1e-9)
}

func TestCharge_RetriesOnceOnTransientFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := NewPaymentHTTPAdapter(httpclient.NewClient(otel.Tracer("test")), server.URL, time.Second, true)
	require.NoError(t, adapter.Charge(context.Background(), testPaymentDetails(), 5.0))
	assert.Equal(t, 2, calls)
}

func TestCharge_FailsAfterMaxAttempts(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := NewPaymentHTTPAdapter(httpclient.NewClient(otel.Tracer("test")), server.URL, time.Second, true)
	err := adapter.Charge(context.Background(), testPaymentDetails(), 5.0)

	var failed *port.PaymentFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, paymentMaxAttempts, calls)
}

func TestCharge_DisabledProviderAlwaysSucceeds(t *testing.T) {
	adapter := NewPaymentHTTPAdapter(httpclient.NewClient(otel.Tracer("test")), "http://localhost:1", time.Second, false)

	require.NoError(t, adapter.Charge(context.Background(), testPaymentDetails(), 5.0))
}
