package services

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"memories-backend/internal/config"
	"memories-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig(gatewayURL, groqURL string) config.AIConfig {
	return config.AIConfig{
		GroqAPIKey:       "test-key",
		GroqBaseURL:      groqURL,
		BeautifyModel:    "mixtral-8x7b-32768",
		TranscribeModel:  "whisper-large-v3",
		GatewayAPIKey:    "test-key",
		GatewayBaseURL:   gatewayURL,
		ReflectionModel:  "google/gemini-2.5-flash",
		RequestTimeoutMs: 2000,
	}
}

func TestBuildReflectionPayload_TruncatesPreviews(t *testing.T) {
	long := strings.Repeat("a", 500)
	memories := []models.Memory{
		{Content: long, Sentiment: models.SentimentHappy},
		{Content: "short", Sentiment: models.SentimentSad},
	}

	payload := BuildReflectionPayload(memories, 3)

	require.Len(t, payload.Memories, 2)
	assert.Len(t, payload.Memories[0].Preview, ReflectionPreviewLength)
	assert.Equal(t, "short", payload.Memories[1].Preview)
	assert.Equal(t, 3, payload.NotebookCount)
	assert.Equal(t, 1, payload.Stats.Happy)
	assert.Equal(t, 1, payload.Stats.Sad)
	assert.Equal(t, 2, payload.Stats.Total)
}

func TestBuildReflectionPayload_MissingSentimentIsNeutral(t *testing.T) {
	payload := BuildReflectionPayload([]models.Memory{{Content: "x"}}, 1)
	require.Len(t, payload.Memories, 1)
	assert.Equal(t, models.SentimentNeutral, payload.Memories[0].Sentiment)
}

func TestGenerateReflection_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"A constellation of moments."}}]}`))
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	reflection, err := svc.GenerateReflection([]models.Memory{{Content: "joy"}}, 1)

	require.NoError(t, err)
	assert.Equal(t, "A constellation of moments.", reflection)
}

func TestGenerateReflection_FailureReturnsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	reflection, err := svc.GenerateReflection([]models.Memory{{Content: "joy"}}, 1)

	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Equal(t, FallbackReflection, reflection)
}

func TestGenerateReflection_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Rate limits exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	reflection, err := svc.GenerateReflection(nil, 0)

	assert.ErrorIs(t, err, ErrAIRateLimited)
	assert.Equal(t, FallbackReflection, reflection)
}

func TestGenerateReflection_QuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Payment required"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	reflection, err := svc.GenerateReflection(nil, 0)

	assert.ErrorIs(t, err, ErrAIQuotaExceeded)
	assert.Equal(t, FallbackReflection, reflection)
}

func TestGenerateReflection_UnreachableGateway(t *testing.T) {
	svc := NewAIService(testAIConfig("http://127.0.0.1:1", "http://127.0.0.1:1"))
	reflection, err := svc.GenerateReflection([]models.Memory{{Content: "joy"}}, 1)

	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Equal(t, FallbackReflection, reflection)
}

func TestBeautifyContent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"A gently rewritten entry."}}]}`))
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	result, err := svc.BeautifyContent("raw text")

	require.NoError(t, err)
	assert.Equal(t, "A gently rewritten entry.", result)
}

func TestBeautifyContent_FailureFallsBackToOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	result, err := svc.BeautifyContent("my raw memory")

	assert.Error(t, err)
	assert.Equal(t, "my raw memory", result)
}

func TestBeautifyContent_MissingKeyFallsBack(t *testing.T) {
	cfg := testAIConfig("http://unused", "http://unused")
	cfg.GroqAPIKey = ""

	svc := NewAIService(cfg)
	result, err := svc.BeautifyContent("original")

	assert.Error(t, err)
	assert.Equal(t, "original", result)
}

func TestTranscribeAudio_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello from the past"}`))
	}))
	defer server.Close()

	svc := NewAIService(testAIConfig(server.URL, server.URL))
	audio := base64.StdEncoding.EncodeToString([]byte("fake-webm-bytes"))
	text, err := svc.TranscribeAudio(audio)

	require.NoError(t, err)
	assert.Equal(t, "hello from the past", text)
}

func TestTranscribeAudio_InvalidBase64(t *testing.T) {
	svc := NewAIService(testAIConfig("http://unused", "http://unused"))
	_, err := svc.TranscribeAudio("not-base64!!!")
	assert.Error(t, err)
}
