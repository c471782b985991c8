package handlers

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"memories-backend/internal/config"
	"memories-backend/internal/models"
	"memories-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShareHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewShareHandler(db *gorm.DB, cfg *config.Config) *ShareHandler {
	return &ShareHandler{
		db:     db,
		config: cfg,
	}
}

// CreateNotebookShare 为整本笔记本生成分享链接，已有有效链接时复用并更新
func (h *ShareHandler) CreateNotebookShare(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	var req models.NotebookShareCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = models.NotebookShareCreateRequest{}
	}

	// 检查笔记本归属
	var notebook models.Notebook
	if err := h.db.Where("id = ? AND user_id = ?", notebookID, userID).First(&notebook).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "笔记本不存在")
		} else {
			utils.InternalError(c)
		}
		return
	}

	// 检查是否已有分享链接
	var existingShare models.NotebookShare
	if err := h.db.Where("notebook_id = ? AND is_active = ?", notebookID, true).First(&existingShare).Error; err == nil {
		if err := h.db.Model(&existingShare).Update("expire_time", req.ExpireTime).Error; err != nil {
			utils.InternalError(c)
			return
		}

		response := models.ShareLinkResponse{
			ShareCode:  existingShare.ShareCode,
			ShareURL:   fmt.Sprintf("%s/shared/%s", h.config.Frontend.BaseURL, existingShare.ShareCode),
			ExpireTime: req.ExpireTime,
		}

		utils.SuccessWithMessage(c, "分享链接更新成功", response)
		return
	}

	shareCode, err := generateRandomString(32)
	if err != nil {
		utils.InternalError(c)
		return
	}

	share := models.NotebookShare{
		NotebookID: uint(notebookID),
		ShareCode:  shareCode,
		ExpireTime: req.ExpireTime,
		VisitCount: 0,
		IsActive:   true,
	}

	if err := h.db.Create(&share).Error; err != nil {
		utils.InternalError(c)
		return
	}

	response := models.ShareLinkResponse{
		ShareCode:  shareCode,
		ShareURL:   fmt.Sprintf("%s/shared/%s", h.config.Frontend.BaseURL, shareCode),
		ExpireTime: req.ExpireTime,
	}

	utils.SuccessWithMessage(c, "分享链接创建成功", response)
}

func (h *ShareHandler) DeleteNotebookShare(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	var notebook models.Notebook
	if err := h.db.Where("id = ? AND user_id = ?", notebookID, userID).First(&notebook).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "笔记本不存在")
		} else {
			utils.InternalError(c)
		}
		return
	}

	// 停用分享链接
	result := h.db.Model(&models.NotebookShare{}).Where("notebook_id = ? AND is_active = ?", notebookID, true).Update("is_active", false)
	if result.Error != nil {
		utils.InternalError(c)
		return
	}

	if result.RowsAffected == 0 {
		utils.NotFound(c, "分享链接不存在")
		return
	}

	utils.SuccessWithMessage(c, "分享链接删除成功", nil)
}

// CreateMemoryShare 为单条回忆生成分享记录，创建后只读、不过期
func (h *ShareHandler) CreateMemoryShare(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	var memory models.Memory
	if err := h.db.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "回忆不存在")
		} else {
			utils.InternalError(c)
		}
		return
	}

	// 已分享过则直接复用
	var existing models.SharedMemory
	if err := h.db.Where("memory_id = ?", memoryID).First(&existing).Error; err == nil {
		utils.Success(c, models.ShareLinkResponse{
			ShareCode: existing.ShareCode,
			ShareURL:  fmt.Sprintf("%s/shared-memory/%s", h.config.Frontend.BaseURL, existing.ShareCode),
		})
		return
	}

	shareCode, err := generateRandomString(32)
	if err != nil {
		utils.InternalError(c)
		return
	}

	shared := models.SharedMemory{
		MemoryID:       uint(memoryID),
		ShareCode:      shareCode,
		SharedByUserID: userID.(uint),
		VisitCount:     0,
	}

	if err := h.db.Create(&shared).Error; err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "分享链接创建成功", models.ShareLinkResponse{
		ShareCode: shareCode,
		ShareURL:  fmt.Sprintf("%s/shared-memory/%s", h.config.Frontend.BaseURL, shareCode),
	})
}

// GetSharedNotebook 公开访问：按分享码取笔记本及其全部回忆
func (h *ShareHandler) GetSharedNotebook(c *gin.Context) {
	shareCode := c.Param("code")

	var share models.NotebookShare
	if err := h.db.Preload("Notebook").
		Where("share_code = ? AND is_active = ?", shareCode, true).First(&share).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "分享链接不存在或已失效")
		} else {
			utils.InternalError(c)
		}
		return
	}

	// 检查是否过期
	if share.ExpireTime != nil && time.Now().After(*share.ExpireTime) {
		utils.Error(c, http.StatusGone, "分享链接已过期")
		return
	}

	var memories []models.Memory
	if err := h.db.Where("notebook_id = ?", share.NotebookID).
		Order("created_at DESC").Find(&memories).Error; err != nil {
		utils.InternalError(c)
		return
	}

	go h.recordVisit(shareCode, &models.ViewerInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})

	utils.Success(c, gin.H{
		"notebook": share.Notebook,
		"memories": memories,
	})
}

// GetSharedMemory 公开访问：按分享码取单条回忆
func (h *ShareHandler) GetSharedMemory(c *gin.Context) {
	shareCode := c.Param("code")

	var shared models.SharedMemory
	if err := h.db.Preload("Memory").
		Where("share_code = ?", shareCode).First(&shared).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "分享链接不存在")
		} else {
			utils.InternalError(c)
		}
		return
	}

	// 分享记录里的回忆可能已被删除
	if shared.Memory.ID == 0 {
		utils.NotFound(c, "回忆已被删除")
		return
	}

	go h.recordVisit(shareCode, &models.ViewerInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})

	utils.Success(c, shared.Memory)
}

// recordVisit 记录分享页访问，同一 IP 一小时内只计一次
func (h *ShareHandler) recordVisit(shareCode string, viewerInfo *models.ViewerInfo) {
	timeWindow := time.Now().Format("2006-01-02-15")
	identifier := fmt.Sprintf("%s-%s-%s", viewerInfo.IP, shareCode, timeWindow)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(identifier)))

	var existingVisit models.ShareVisit
	oneHourAgo := time.Now().Add(-1 * time.Hour)

	err := h.db.Where("share_code = ? AND visitor_ip = ? AND visited_at > ? AND view_hash = ?",
		shareCode, viewerInfo.IP, oneHourAgo, hash).First(&existingVisit).Error

	if err == nil {
		return
	}

	visit := models.ShareVisit{
		ShareCode: shareCode,
		VisitorIP: &viewerInfo.IP,
		UserAgent: &viewerInfo.UserAgent,
		Referer:   &viewerInfo.Referer,
		ViewHash:  &hash,
		VisitedAt: time.Now(),
	}

	h.db.Create(&visit)
	h.db.Model(&models.NotebookShare{}).Where("share_code = ?", shareCode).Update("visit_count", gorm.Expr("visit_count + 1"))
	h.db.Model(&models.SharedMemory{}).Where("share_code = ?", shareCode).Update("visit_count", gorm.Expr("visit_count + 1"))
}

func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
