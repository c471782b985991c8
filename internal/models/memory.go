package models

import (
	"time"

	"gorm.io/gorm"
)

// Sentiment 回忆的情绪标签，由关键词启发式推导，客户端不可指定
type Sentiment string

const (
	SentimentHappy   Sentiment = "happy"
	SentimentSad     Sentiment = "sad"
	SentimentNeutral Sentiment = "neutral"
)

type Memory struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	NotebookID uint           `json:"notebook_id" gorm:"not null;index"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	Title      string         `json:"title" gorm:"size:255;not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Sentiment  Sentiment      `json:"sentiment" gorm:"size:10;default:neutral;index"`
	PhotoURL   *string        `json:"photo_url" gorm:"size:500"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// 关联
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Notebook Notebook `json:"notebook,omitempty" gorm:"foreignKey:NotebookID"`
}

// EffectiveSentiment 缺失的情绪一律按 neutral 处理
func (m *Memory) EffectiveSentiment() Sentiment {
	switch m.Sentiment {
	case SentimentHappy, SentimentSad, SentimentNeutral:
		return m.Sentiment
	}
	return SentimentNeutral
}

type MemoryCreateRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	PhotoURL *string `json:"photo_url"`
	// Beautify 为 false 时跳过 AI 润色，直接保存原文
	Beautify bool `json:"beautify"`
}

type MemoryUpdateRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	PhotoURL *string `json:"photo_url"`
	Beautify bool    `json:"beautify"`
}

type MemoryListRequest struct {
	Page   int    `form:"page" validate:"min=0"`
	Limit  int    `form:"limit" validate:"min=0,max=100"`
	Search string `form:"search"`
	Order  string `form:"order" validate:"omitempty,oneof=asc desc"`
}
