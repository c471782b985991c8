// internal/services/notebook_service.go
package services

import (
	"fmt"
	"memories-backend/internal/models"

	"gorm.io/gorm"
)

type NotebookService struct {
	db *gorm.DB
}

func NewNotebookService(db *gorm.DB) *NotebookService {
	return &NotebookService{db: db}
}

func (s *NotebookService) GetNotebooks(userID uint) ([]models.Notebook, error) {
	var notebooks []models.Notebook

	err := s.db.Table("notebooks").
		Select("notebooks.*, COUNT(memories.id) as memory_count").
		Joins("LEFT JOIN memories ON notebooks.id = memories.notebook_id AND memories.deleted_at IS NULL").
		Where("notebooks.user_id = ? AND notebooks.deleted_at IS NULL", userID).
		Group("notebooks.id").
		Order("notebooks.created_at DESC").
		Find(&notebooks).Error

	if err != nil {
		return nil, err
	}

	return notebooks, nil
}

func (s *NotebookService) GetNotebookByID(notebookID, userID uint) (*models.Notebook, error) {
	var notebook models.Notebook
	err := s.db.Where("id = ? AND user_id = ?", notebookID, userID).First(&notebook).Error
	if err != nil {
		return nil, err
	}
	return &notebook, nil
}

func (s *NotebookService) CreateNotebook(userID uint, req *models.NotebookCreateRequest) (*models.Notebook, error) {
	// 检查同名笔记本
	var count int64
	if err := s.db.Model(&models.Notebook{}).Where("user_id = ? AND title = ?", userID, req.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("同名笔记本已存在")
	}

	notebook := models.Notebook{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.db.Create(&notebook).Error; err != nil {
		return nil, err
	}

	return &notebook, nil
}

func (s *NotebookService) UpdateNotebook(notebookID, userID uint, req *models.NotebookUpdateRequest) (*models.Notebook, error) {
	var notebook models.Notebook

	if err := s.db.Where("id = ? AND user_id = ?", notebookID, userID).First(&notebook).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("笔记本不存在")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
	}

	if err := s.db.Model(&notebook).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &notebook, nil
}

// DeleteNotebook 删除笔记本并在同一事务里级联删除其回忆、分享链接和访问记录
func (s *NotebookService) DeleteNotebook(notebookID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var notebook models.Notebook
		if err := tx.Where("id = ? AND user_id = ?", notebookID, userID).First(&notebook).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("笔记本不存在或无权限删除")
			}
			return err
		}

		// 收集本子下的回忆，先删掉它们的单条分享
		var memoryIDs []uint
		if err := tx.Model(&models.Memory{}).Where("notebook_id = ?", notebookID).Pluck("id", &memoryIDs).Error; err != nil {
			return err
		}
		if len(memoryIDs) > 0 {
			if err := tx.Where("memory_id IN ?", memoryIDs).Delete(&models.SharedMemory{}).Error; err != nil {
				return fmt.Errorf("删除回忆分享失败: %v", err)
			}
		}

		// 删除回忆本身（软删除）
		if err := tx.Where("notebook_id = ?", notebookID).Delete(&models.Memory{}).Error; err != nil {
			return fmt.Errorf("删除回忆失败: %v", err)
		}

		// 删除笔记本级的分享链接
		if err := tx.Model(&models.NotebookShare{}).Where("notebook_id = ?", notebookID).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("停用分享链接失败: %v", err)
		}

		result := tx.Delete(&notebook)
		if result.Error != nil {
			return fmt.Errorf("删除笔记本失败: %v", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("笔记本不存在或无权限删除")
		}

		return nil
	})
}
