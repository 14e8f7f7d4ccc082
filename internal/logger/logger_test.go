package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputLevels(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, logrus.DebugLevel, NewWithOutput("debug", "text", &buf).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("loud", "text", &buf).GetLevel())
}

func TestLogErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logg := NewWithOutput("info", "json", &buf)

	LogError(logg, "sales", "Submit", "daily_entry", map[string]string{"shop_id": "SHOP123"}, errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["msg"])
	assert.Equal(t, "sales", line["module"])
	assert.Equal(t, "Submit", line["funcName"])
	assert.Equal(t, "daily_entry", line["context"])
	assert.NotNil(t, line["data"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logg := NewWithOutput("info", "json", &buf)

	h := RequestLogger(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/help", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/app/help", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}
