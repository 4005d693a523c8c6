package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hermitageResponse = `{
  "response": {
    "GeoObjectCollection": {
      "featureMember": [
        {"GeoObject": {"name": "Дворцовая площадь, 2", "Point": {"pos": "30.314130 59.939864"}}},
        {"GeoObject": {"Point": {"pos": "1 2"}}}
      ]
    }
  }
}`

func TestYandexClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("apikey"))
		assert.Equal(t, "Санкт-Петербург, Дворцовая пл., 2", q.Get("geocode"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "ru_RU", q.Get("lang"))
		_, _ = w.Write([]byte(hermitageResponse))
	}))
	defer server.Close()

	client := NewYandexClient("key", server.URL, "ru_RU", time.Second, nil)
	coords, err := client.Geocode(context.Background(), "Санкт-Петербург", "Дворцовая пл., 2")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 59.939864, coords.Latitude, 1e-9)
	assert.InDelta(t, 30.314130, coords.Longitude, 1e-9)
}

func TestYandexClient_NoAPIKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewYandexClient("", server.URL, "ru_RU", time.Second, nil)
	coords, err := client.Geocode(context.Background(), "Москва", "Тверская, 1")
	require.NoError(t, err)
	assert.Nil(t, coords)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestYandexClient_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantError bool
	}{
		{"not found", http.StatusOK, `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`, false},
		{"server error", http.StatusInternalServerError, `oops`, true},
		{"invalid json", http.StatusOK, `{"response":`, true},
		{"bad position", http.StatusOK, `{"response":{"GeoObjectCollection":{"featureMember":[{"GeoObject":{"Point":{"pos":"abc"}}}]}}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewYandexClient("key", server.URL, "", time.Second, nil)
			coords, err := client.Geocode(context.Background(), "Москва", "Тверская, 1")
			assert.Nil(t, coords)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
