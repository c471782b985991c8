package services

import (
	"testing"

	"memories-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateMemory_RejectsBlankContent(t *testing.T) {
	svc := NewMemoryService(nil, nil)

	_, err := svc.CreateMemory(1, 1, &models.MemoryCreateRequest{
		Title:   "一天",
		Content: "   \n\t  ",
	})

	assert.Error(t, err)
}

func TestEffectiveSentiment(t *testing.T) {
	assert.Equal(t, models.SentimentHappy, (&models.Memory{Sentiment: models.SentimentHappy}).EffectiveSentiment())
	assert.Equal(t, models.SentimentNeutral, (&models.Memory{Sentiment: ""}).EffectiveSentiment())
	assert.Equal(t, models.SentimentNeutral, (&models.Memory{Sentiment: "stressed"}).EffectiveSentiment())
}
