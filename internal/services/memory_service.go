// internal/services/memory_service.go
package services

import (
	"fmt"
	"math"
	"strings"

	"memories-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MemoryService struct {
	db *gorm.DB
	ai *AIService
}

type UserStats struct {
	TotalMemories  int64 `json:"total_memories"`
	TotalNotebooks int64 `json:"total_notebooks"`
	HappyCount     int64 `json:"happy_count"`
	SadCount       int64 `json:"sad_count"`
	NeutralCount   int64 `json:"neutral_count"`
	SharedCount    int64 `json:"shared_count"`
}

func NewMemoryService(db *gorm.DB, ai *AIService) *MemoryService {
	return &MemoryService{db: db, ai: ai}
}

func (s *MemoryService) GetMemories(notebookID, userID uint, req *models.MemoryListRequest) ([]models.Memory, *models.Pagination, error) {
	var memories []models.Memory
	var total int64

	query := s.db.Model(&models.Memory{}).Where("notebook_id = ? AND user_id = ?", notebookID, userID)

	if req.Search != "" {
		query = query.Where("title ILIKE ? OR content ILIKE ?", "%"+req.Search+"%", "%"+req.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pages := int(math.Ceil(float64(total) / float64(req.Limit)))

	direction := "DESC"
	if req.Order == "asc" {
		direction = "ASC"
	}

	err := query.Order("created_at " + direction).Limit(req.Limit).Offset(offset).Find(&memories).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return memories, pagination, nil
}

// GetAllMemoriesByUser 取用户全部回忆，供时间线和回顾生成使用
func (s *MemoryService) GetAllMemoriesByUser(userID uint) ([]models.Memory, error) {
	var memories []models.Memory
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&memories).Error
	if err != nil {
		return nil, err
	}
	return memories, nil
}

func (s *MemoryService) GetMemoriesByNotebook(notebookID, userID uint) ([]models.Memory, error) {
	var memories []models.Memory
	err := s.db.Where("notebook_id = ? AND user_id = ?", notebookID, userID).
		Order("created_at ASC").Find(&memories).Error
	if err != nil {
		return nil, err
	}
	return memories, nil
}

// CreateMemory 创建回忆：校验归属和内容，可选地经 AI 润色（失败回退原文），
// 再做情绪归类后入库
func (s *MemoryService) CreateMemory(notebookID, userID uint, req *models.MemoryCreateRequest) (*models.Memory, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("回忆内容不能为空")
	}

	// 笔记本必须存在且属于当前用户
	var count int64
	if err := s.db.Model(&models.Notebook{}).Where("id = ? AND user_id = ?", notebookID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("笔记本不存在")
	}

	finalContent := content
	if req.Beautify && s.ai != nil {
		beautified, err := s.ai.BeautifyContent(content)
		if err != nil {
			// 润色是锦上添花，失败只记日志
			logrus.WithError(err).Warn("内容润色失败，使用原文")
		}
		finalContent = beautified
	}

	memory := models.Memory{
		NotebookID: notebookID,
		UserID:     userID,
		Title:      req.Title,
		Content:    finalContent,
		Sentiment:  ClassifySentiment(finalContent),
		PhotoURL:   req.PhotoURL,
	}

	if err := s.db.Create(&memory).Error; err != nil {
		return nil, err
	}

	return &memory, nil
}

func (s *MemoryService) GetMemoryByID(memoryID, userID uint) (*models.Memory, error) {
	var memory models.Memory
	err := s.db.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error
	if err != nil {
		return nil, err
	}
	return &memory, nil
}

// UpdateMemory 更新标题、内容、照片，内容变化后重新归类情绪
func (s *MemoryService) UpdateMemory(memoryID, userID uint, req *models.MemoryUpdateRequest) (*models.Memory, error) {
	var memory models.Memory

	if err := s.db.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("回忆不存在")
		}
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("回忆内容不能为空")
	}

	finalContent := content
	if req.Beautify && s.ai != nil {
		beautified, err := s.ai.BeautifyContent(content)
		if err != nil {
			logrus.WithError(err).Warn("内容润色失败，使用原文")
		}
		finalContent = beautified
	}

	updates := map[string]interface{}{
		"title":     req.Title,
		"content":   finalContent,
		"sentiment": ClassifySentiment(finalContent),
		"photo_url": req.PhotoURL,
	}

	if err := s.db.Model(&memory).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &memory, nil
}

func (s *MemoryService) DeleteMemory(memoryID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var memory models.Memory
		if err := tx.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("回忆不存在或无权限删除")
			}
			return err
		}

		// 先删除单条分享记录
		if err := tx.Where("memory_id = ?", memoryID).Delete(&models.SharedMemory{}).Error; err != nil {
			return fmt.Errorf("删除分享记录失败: %v", err)
		}

		result := tx.Delete(&memory)
		if result.Error != nil {
			return fmt.Errorf("删除回忆失败: %v", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("回忆不存在或无权限删除")
		}

		return nil
	})
}

func (s *MemoryService) GetUserStats(userID uint) (*UserStats, error) {
	var stats UserStats

	if err := s.db.Model(&models.Memory{}).Where("user_id = ?", userID).Count(&stats.TotalMemories).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notebook{}).Where("user_id = ?", userID).Count(&stats.TotalNotebooks).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Memory{}).Where("user_id = ? AND sentiment = ?", userID, models.SentimentHappy).Count(&stats.HappyCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Memory{}).Where("user_id = ? AND sentiment = ?", userID, models.SentimentSad).Count(&stats.SadCount).Error; err != nil {
		return nil, err
	}

	// 其余（含历史上的空值）一律按 neutral 计
	stats.NeutralCount = stats.TotalMemories - stats.HappyCount - stats.SadCount

	if err := s.db.Model(&models.SharedMemory{}).Where("shared_by_user_id = ?", userID).Count(&stats.SharedCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
