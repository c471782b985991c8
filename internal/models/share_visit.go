package models

import "time"

// ShareVisit 分享页面的访问记录，按小时窗口去重
type ShareVisit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ShareCode string    `json:"share_code" gorm:"size:32;not null;index"`
	VisitorIP *string   `json:"visitor_ip" gorm:"type:inet"`
	UserAgent *string   `json:"user_agent" gorm:"type:text"`
	Referer   *string   `json:"referer" gorm:"type:text"`
	ViewHash  *string   `json:"view_hash" gorm:"size:32;index"`
	VisitedAt time.Time `json:"visited_at" gorm:"index;default:CURRENT_TIMESTAMP"`
}

type ViewerInfo struct {
	IP        string
	UserAgent string
	Referer   string
}
