package models

import (
	"time"

	"gorm.io/gorm"
)

type Notebook struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description *string        `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// 关联
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Memories []Memory `json:"memories,omitempty" gorm:"foreignKey:NotebookID"`

	// 计算字段
	MemoryCount int `json:"memory_count,omitempty" gorm:"-"`
}

type NotebookCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}

type NotebookUpdateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}
