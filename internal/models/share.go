package models

import "time"

// NotebookShare 整本笔记本的公开分享链接
type NotebookShare struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	NotebookID uint       `json:"notebook_id" gorm:"not null;index"`
	ShareCode  string     `json:"share_code" gorm:"size:32;uniqueIndex;not null"`
	ExpireTime *time.Time `json:"expire_time"`
	VisitCount int        `json:"visit_count" gorm:"default:0"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at"`

	Notebook Notebook `json:"notebook,omitempty" gorm:"foreignKey:NotebookID"`
}

// SharedMemory 单条回忆的分享记录，创建后只读、不过期
type SharedMemory struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	MemoryID       uint      `json:"memory_id" gorm:"not null;index"`
	ShareCode      string    `json:"share_code" gorm:"size:32;uniqueIndex;not null"`
	SharedByUserID uint      `json:"shared_by_user_id" gorm:"not null;index"`
	VisitCount     int       `json:"visit_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`

	Memory Memory `json:"memory,omitempty" gorm:"foreignKey:MemoryID"`
}

type NotebookShareCreateRequest struct {
	ExpireTime *time.Time `json:"expire_time"`
}

type ShareLinkResponse struct {
	ShareCode  string     `json:"share_code"`
	ShareURL   string     `json:"share_url"`
	ExpireTime *time.Time `json:"expire_time,omitempty"`
}
