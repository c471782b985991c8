package services

import (
	"testing"

	"memories-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifySentiment_Happy(t *testing.T) {
	assert.Equal(t, models.SentimentHappy, ClassifySentiment("I felt so happy and full of love"))
	assert.Equal(t, models.SentimentHappy, ClassifySentiment("what a wonderful amazing day"))
	assert.Equal(t, models.SentimentHappy, ClassifySentiment("we laughed until we cried with joy and joy again"))
}

func TestClassifySentiment_Sad(t *testing.T) {
	assert.Equal(t, models.SentimentSad, ClassifySentiment("It was a sad and lonely day"))
	assert.Equal(t, models.SentimentSad, ClassifySentiment("I miss the friends I lost"))
}

func TestClassifySentiment_Neutral(t *testing.T) {
	// 无命中
	assert.Equal(t, models.SentimentNeutral, ClassifySentiment("went to the store and bought bread"))
	// 两边命中数持平
	assert.Equal(t, models.SentimentNeutral, ClassifySentiment("a happy moment on a sad day"))
	// 空串
	assert.Equal(t, models.SentimentNeutral, ClassifySentiment(""))
}

func TestClassifySentiment_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ClassifySentiment("HAPPY LOVE"), ClassifySentiment("happy love"))
	assert.Equal(t, models.SentimentHappy, ClassifySentiment("WONDERFUL"))
}

func TestClassifySentiment_Pure(t *testing.T) {
	input := "joy and pain in equal measure, but mostly joy"
	first := ClassifySentiment(input)
	second := ClassifySentiment(input)
	assert.Equal(t, first, second)
	assert.Equal(t, models.SentimentHappy, first)
}

func TestClassifySentiment_SubstringMatching(t *testing.T) {
	// 匹配按子串计，不做分词："unhappy" 也命中 "happy"
	assert.Equal(t, models.SentimentHappy, ClassifySentiment("unhappy"))
	// "hardware" 命中 "hard"
	assert.Equal(t, models.SentimentSad, ClassifySentiment("hardware"))
}
