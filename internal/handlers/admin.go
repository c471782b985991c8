package handlers

import (
	"memories-backend/internal/models"
	"memories-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// GetSystemStats 全站统计，仅管理员可见
func (h *AdminHandler) GetSystemStats(c *gin.Context) {
	var userCount, notebookCount, memoryCount, shareCount int64

	if err := h.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.InternalError(c)
		return
	}
	if err := h.db.Model(&models.Notebook{}).Count(&notebookCount).Error; err != nil {
		utils.InternalError(c)
		return
	}
	if err := h.db.Model(&models.Memory{}).Count(&memoryCount).Error; err != nil {
		utils.InternalError(c)
		return
	}
	if err := h.db.Model(&models.SharedMemory{}).Count(&shareCount).Error; err != nil {
		utils.InternalError(c)
		return
	}

	var totalStorage int64
	if err := h.db.Model(&models.UserStorage{}).Select("COALESCE(SUM(used_space), 0)").Scan(&totalStorage).Error; err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"user_count":     userCount,
		"notebook_count": notebookCount,
		"memory_count":   memoryCount,
		"share_count":    shareCount,
		"total_storage":  totalStorage,
	})
}
