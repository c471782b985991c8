// internal/services/sentiment_service.go
package services

import (
	"strings"

	"memories-backend/internal/models"
)

// 固定的情绪关键词表，匹配采用子串计数，不做分词
var happyWords = []string{"happy", "joy", "love", "wonderful", "amazing", "great", "beautiful", "laugh"}
var sadWords = []string{"sad", "miss", "lost", "difficult", "hard", "pain", "cry", "alone"}

// ClassifySentiment 对文本做情绪归类：happy 词多于 sad 词为 happy，
// 反之为 sad，持平（含全无命中）为 neutral。纯函数，可并发调用。
func ClassifySentiment(text string) models.Sentiment {
	lowerText := strings.ToLower(text)

	happyCount := 0
	for _, word := range happyWords {
		happyCount += strings.Count(lowerText, word)
	}

	sadCount := 0
	for _, word := range sadWords {
		sadCount += strings.Count(lowerText, word)
	}

	if happyCount > sadCount {
		return models.SentimentHappy
	}
	if sadCount > happyCount {
		return models.SentimentSad
	}
	return models.SentimentNeutral
}
