package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"memories-backend/internal/config"
	"memories-backend/internal/services"
	"memories-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService *services.FileService
	authService *services.AuthService
	config      *config.Config
}

func NewFileHandler(fileService *services.FileService, authService *services.AuthService, cfg *config.Config) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		authService: authService,
		config:      cfg,
	}
}

// UploadPhoto 给回忆上传照片，校验格式和大小后落盘
func (h *FileHandler) UploadPhoto(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "请选择要上传的照片")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !h.config.IsPhotoType(ext) {
		utils.Error(c, http.StatusBadRequest, "不支持的照片格式")
		return
	}

	if file.Size > h.config.File.MaxPhotoSize {
		utils.Error(c, http.StatusBadRequest, "照片大小超出限制")
		return
	}

	photoURL, err := h.fileService.UploadPhoto(uint(memoryID), userID.(uint), file)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "上传成功", gin.H{
		"photo_url": photoURL,
	})
}

func (h *FileHandler) RemovePhoto(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	if err := h.fileService.RemovePhoto(uint(memoryID), userID.(uint)); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "照片已移除", nil)
}

func (h *FileHandler) GetUserStorage(c *gin.Context) {
	userID, _ := c.Get("user_id")

	storage, err := h.authService.GetUserStorage(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"used_space":  storage.UsedSpace,
		"max_space":   h.config.File.MaxUserStorage,
		"photo_count": storage.PhotoCount,
	})
}
