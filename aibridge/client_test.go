package aibridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageResponse(data []byte) map[string]any {
	return map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"parts": []any{
					map[string]any{"text": "here you go"},
					map[string]any{"inlineData": map[string]any{
						"mimeType": "image/png",
						"data":     base64.StdEncoding.EncodeToString(data),
					}},
				},
			},
		}},
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{Endpoint: srv.URL, Model: "test-model", APIKey: "k", Timeout: 5 * time.Second})
}

func TestFromMockup(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(imageResponse([]byte("rendered")))
	})

	img, err := c.FromMockup(context.Background(), []byte("mock"), "")
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.True(t, strings.HasPrefix(img.DataURI(), "data:image/png;base64,"))

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mock")), parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, "User's additional context: "+DefaultMockupPrompt+".")
	assert.Nil(t, got.GenerationConfig)
}

func TestFromPrompt(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(imageResponse([]byte("pure")))
	})

	img, err := c.FromPrompt(context.Background(), "cats in space")
	require.NoError(t, err)
	assert.Equal(t, []byte("pure"), img.Data)

	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "1:1", got.GenerationConfig.ImageConfig.AspectRatio)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "Design concept: cats in space.")
}

func TestFromPromptEmptyMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, p := range []string{"", "   "} {
		_, err := c.FromPrompt(context.Background(), p)
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Zero(t, calls.Load())
}

func TestNoImageInResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`))
	})

	_, err := c.FromPrompt(context.Background(), "a bag")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := c.FromMockup(context.Background(), []byte("mock"), "bold")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Code)
	assert.Equal(t, "quota exhausted", apiErr.Message)
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://127.0.0.1:1", Model: "m"})
	_, err := c.FromPrompt(context.Background(), "a bag")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FromPrompt(ctx, "a bag")
	assert.Error(t, err)
}
