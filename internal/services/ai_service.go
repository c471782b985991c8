// internal/services/ai_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"memories-backend/internal/config"
	"memories-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// ReflectionPreviewLength 纳入回顾请求的每条回忆摘要上限
const ReflectionPreviewLength = 100

// FallbackReflection 回顾生成失败时的兜底文案，保证功能可降级而不是报错中断
const FallbackReflection = "Your memories bloom like flowers in a garden, each one a unique petal in the tapestry of your life's journey."

var (
	ErrAIRateLimited   = errors.New("AI 服务请求频率受限")
	ErrAIQuotaExceeded = errors.New("AI 服务额度已用完")
	ErrAIUnavailable   = errors.New("AI 服务暂时不可用")
)

type AIService struct {
	cfg    config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutMs) * time.Millisecond,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// MemoryPreview 回顾请求里单条回忆的摘要
type MemoryPreview struct {
	Sentiment models.Sentiment `json:"sentiment"`
	Preview   string           `json:"preview"`
}

// ReflectionPayload 提交给回顾生成网关的有界载荷
type ReflectionPayload struct {
	Memories      []MemoryPreview `json:"memories"`
	NotebookCount int             `json:"notebook_count"`
	Stats         SentimentStats  `json:"stats"`
}

// BuildReflectionPayload 把回忆集合压缩成有界载荷：每条内容截断到
// ReflectionPreviewLength 个字符，并附带笔记本数与各情绪计数
func BuildReflectionPayload(memories []models.Memory, notebookCount int) ReflectionPayload {
	previews := make([]MemoryPreview, 0, len(memories))
	for _, m := range memories {
		previews = append(previews, MemoryPreview{
			Sentiment: m.EffectiveSentiment(),
			Preview:   truncateRunes(m.Content, ReflectionPreviewLength),
		})
	}
	return ReflectionPayload{
		Memories:      previews,
		NotebookCount: notebookCount,
		Stats:         CountSentiments(memories),
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// BeautifyContent 调用 Groq 把原始输入改写成日记体。任何失败都降级为
// 返回原文，绝不阻塞回忆的创建
func (s *AIService) BeautifyContent(content string) (string, error) {
	if s.cfg.GroqAPIKey == "" {
		return content, fmt.Errorf("GROQ_API_KEY 未配置")
	}

	reqBody := chatRequest{
		Model: s.cfg.BeautifyModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a compassionate writer. Rewrite the user's text into a beautiful journal entry that keeps its meaning intact. Keep it short and apt - not too beautified, just naturally elegant."},
			{Role: "user", Content: content},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	result, err := s.postChat(s.cfg.GroqBaseURL+"/chat/completions", s.cfg.GroqAPIKey, reqBody)
	if err != nil {
		return content, err
	}
	if strings.TrimSpace(result) == "" {
		return content, nil
	}
	return result, nil
}

// GenerateReflection 生成整个回忆花园的诗意回顾。失败时返回兜底文案和
// 可恢复的错误，调用方据此提示用户但不中断页面；从不自动重试
func (s *AIService) GenerateReflection(memories []models.Memory, notebookCount int) (string, error) {
	payload := BuildReflectionPayload(memories, notebookCount)

	systemPrompt := `You are a poetic memory curator. Create a beautiful, reflective visualization of someone's memory collection. Use metaphors like a "garden of memories", "constellation of moments", or "tapestry of experiences".

Be warm, encouraging, and poetic. Keep it to 3-4 sentences that feel personal and meaningful. Focus on the emotional journey and growth.`

	var snippets []string
	for i, p := range payload.Memories {
		if i >= 5 {
			break
		}
		snippets = append(snippets, fmt.Sprintf("- [%s] %s...", p.Sentiment, p.Preview))
	}

	userPrompt := fmt.Sprintf(`Create a poetic reflection for someone who has collected %d memories across %d notebooks.

Memory sentiments breakdown:
- Happy: %d
- Sad: %d
- Neutral: %d

Sample memory snippets:
%s

Generate a beautiful, poetic reflection about their memory garden.`,
		payload.Stats.Total, payload.NotebookCount,
		payload.Stats.Happy, payload.Stats.Sad, payload.Stats.Neutral,
		strings.Join(snippets, "\n"))

	reqBody := chatRequest{
		Model: s.cfg.ReflectionModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	result, err := s.postChat(s.cfg.GatewayBaseURL+"/chat/completions", s.cfg.GatewayAPIKey, reqBody)
	if err != nil {
		return FallbackReflection, err
	}
	if strings.TrimSpace(result) == "" {
		return FallbackReflection, nil
	}
	return result, nil
}

func (s *AIService) postChat(url, apiKey string, reqBody chatRequest) (string, error) {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("AI 请求失败")
		return "", ErrAIUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("AI 服务返回错误")

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", ErrAIRateLimited
		case http.StatusPaymentRequired:
			return "", ErrAIQuotaExceeded
		default:
			return "", ErrAIUnavailable
		}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", ErrAIUnavailable
	}
	if chatResp.Error != nil {
		return "", ErrAIUnavailable
	}
	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return chatResp.Choices[0].Message.Content, nil
}

// TranscribeAudio 把 base64 编码的音频交给 Groq Whisper 转写成文本
func (s *AIService) TranscribeAudio(base64Audio string) (string, error) {
	if s.cfg.GroqAPIKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY 未配置")
	}

	audio, err := base64.StdEncoding.DecodeString(base64Audio)
	if err != nil {
		return "", fmt.Errorf("音频数据不是合法的 base64: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", s.cfg.TranscribeModel); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.GroqBaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.GroqAPIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("转写请求失败")
		return "", ErrAIUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", ErrAIRateLimited
		}
		return "", ErrAIUnavailable
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", ErrAIUnavailable
	}

	return result.Text, nil
}
