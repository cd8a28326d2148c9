package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		SecretKey: "sk_test_abc123",
		BaseURL:   baseURL,
		Currency:  "eur",
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "Valid config",
			config:  testConfig("https://api.stripe.com/v1"),
			wantErr: false,
		},
		{
			name: "Missing secret key",
			config: Config{
				BaseURL:  "https://api.stripe.com/v1",
				Currency: "eur",
			},
			wantErr: true,
		},
		{
			name: "Missing base URL",
			config: Config{
				SecretKey: "sk_test_abc123",
				Currency:  "eur",
			},
			wantErr: true,
		},
		{
			name: "Missing currency",
			config: Config{
				SecretKey: "sk_test_abc123",
				BaseURL:   "https://api.stripe.com/v1",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				require.NotNil(t, client)
				assert.Equal(t, tt.config, client.GetConfig())
			}
		})
	}
}

func TestRetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer sk_test_abc123", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/payment_intents/pi_paid":
			w.Write([]byte(`{"id":"pi_paid","amount":21000,"currency":"eur","status":"succeeded"}`))
		case "/payment_intents/pi_pending":
			w.Write([]byte(`{"id":"pi_pending","amount":21000,"currency":"eur","status":"requires_payment_method"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent"}}`))
		}
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	t.Run("Succeeded intent", func(t *testing.T) {
		intent, err := client.RetrieveIntent(context.Background(), "pi_paid")
		require.NoError(t, err)
		assert.Equal(t, "pi_paid", intent.ID)
		assert.Equal(t, int64(21000), intent.Amount)
		assert.True(t, intent.Succeeded())
	})

	t.Run("Pending intent", func(t *testing.T) {
		intent, err := client.RetrieveIntent(context.Background(), "pi_pending")
		require.NoError(t, err)
		assert.Equal(t, StatusRequiresPaymentMethod, intent.Status)
		assert.False(t, intent.Succeeded())
	})

	t.Run("Unknown intent", func(t *testing.T) {
		intent, err := client.RetrieveIntent(context.Background(), "pi_missing")
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
		assert.Nil(t, intent)
	})

	t.Run("Empty intent ID", func(t *testing.T) {
		intent, err := client.RetrieveIntent(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Nil(t, intent)
	})
}

func TestCreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "21000", r.PostForm.Get("amount"))
		assert.Equal(t, "eur", r.PostForm.Get("currency"))

		w.Write([]byte(`{"id":"pi_new","amount":21000,"currency":"eur","status":"requires_payment_method","client_secret":"pi_new_secret"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	intent, err := client.CreateIntent(context.Background(), CreateIntentRequest{
		Amount:      21000,
		Description: "order checkout",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_new", intent.ID)
	assert.Equal(t, "pi_new_secret", intent.ClientSecret)

	t.Run("Non-positive amount", func(t *testing.T) {
		intent, err := client.CreateIntent(context.Background(), CreateIntentRequest{Amount: 0})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Nil(t, intent)
	})
}

func TestUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	intent, err := client.RetrieveIntent(context.Background(), "pi_paid")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, intent)
}
