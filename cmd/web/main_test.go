package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/config"
	"github.com/Enthunya/mekgoro-tbos/internal/metrics"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Port:            "0",
		APIURL:          "http://127.0.0.1:1",
		APITimeout:      time.Second,
		SessionSecret:   "test-secret",
		SessionTTL:      time.Hour,
		StockSource:     config.SourceFixture,
		CreditSource:    config.SourceBackend,
		SupportWhatsApp: "0712345678",
		PhoneRegion:     "ZA",
	}
}

func TestRouterServesEveryScreen(t *testing.T) {
	logg, _ := test.NewNullLogger()
	router, err := newRouter(testConfig(), logg, metrics.New())
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	resp, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/login")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/app/daily")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "http_requests_total")
}
