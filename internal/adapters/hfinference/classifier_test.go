package hfinference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassifyTextNestedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[[{"label":"LABEL_1","score":0.91},{"label":"LABEL_0","score":0.09}]]`))
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "secret", "test-model", time.Second, zap.NewNop())

	prediction, err := c.ClassifyText(context.Background(), "mülakat daveti")
	require.NoError(t, err)
	assert.Equal(t, "LABEL_1", prediction.Label)
	assert.Equal(t, 0.91, prediction.Score)
}

func TestClassifyTextFlatResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"basvuru_onayi","score":0.64},{"label":"spam_reklam","score":0.36}]`))
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "", "test-model", time.Second, zap.NewNop())

	prediction, err := c.ClassifyText(context.Background(), "başvurunuz alındı")
	require.NoError(t, err)
	assert.Equal(t, "basvuru_onayi", prediction.Label)
}

func TestClassifyTextErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"model loading"}`))
	}))
	defer server.Close()

	c := NewClassifier(server.URL, "", "test-model", time.Second, zap.NewNop())

	_, err := c.ClassifyText(context.Background(), "text")
	assert.Error(t, err)
}

func TestParseScoresUnexpectedShape(t *testing.T) {
	_, err := parseScores([]byte(`{"error":"bad"}`))
	assert.Error(t, err)
}
