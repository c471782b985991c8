// internal/services/file_service.go
package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"memories-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileService struct {
	db         *gorm.DB
	uploadPath string
	maxStorage int64
}

func NewFileService(db *gorm.DB, uploadPath string, maxStorage int64) *FileService {
	return &FileService{
		db:         db,
		uploadPath: uploadPath,
		maxStorage: maxStorage,
	}
}

// UploadPhoto 保存照片到用户目录并挂到回忆上，同时更新存储统计。
// 返回可公开访问的 /uploads 路径
func (s *FileService) UploadPhoto(memoryID, userID uint, file *multipart.FileHeader) (string, error) {
	var memory models.Memory
	if err := s.db.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("回忆不存在或无权限上传")
		}
		return "", err
	}

	// 检查存储配额
	var storage models.UserStorage
	if err := s.db.Where("user_id = ?", userID).First(&storage).Error; err != nil {
		return "", err
	}
	if storage.UsedSpace+file.Size > s.maxStorage {
		return "", fmt.Errorf("存储空间不足")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	userDir := filepath.Join(s.uploadPath, "users", fmt.Sprintf("%d", userID))

	if err := os.MkdirAll(userDir, 0755); err != nil {
		return "", err
	}

	dst := filepath.Join(userDir, filename)
	if err := saveUploadedFile(file, dst); err != nil {
		return "", err
	}

	photoURL := fmt.Sprintf("/uploads/users/%d/%s", userID, filename)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&memory).Update("photo_url", photoURL).Error; err != nil {
			return err
		}
		return s.updateUserStorageInTx(tx, userID, file.Size)
	})
	if err != nil {
		// 入库失败时清掉已落盘的文件
		os.Remove(dst)
		return "", err
	}

	return photoURL, nil
}

func (s *FileService) updateUserStorageInTx(tx *gorm.DB, userID uint, sizeDelta int64) error {
	updates := map[string]interface{}{
		"used_space": gorm.Expr("used_space + ?", sizeDelta),
	}
	if sizeDelta > 0 {
		updates["photo_count"] = gorm.Expr("photo_count + 1")
	} else {
		updates["photo_count"] = gorm.Expr("GREATEST(photo_count - 1, 0)")
	}
	return tx.Model(&models.UserStorage{}).Where("user_id = ?", userID).Updates(updates).Error
}

// RemovePhoto 从回忆上摘掉照片并回收存储额度，物理文件保留以便恢复
func (s *FileService) RemovePhoto(memoryID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var memory models.Memory
		if err := tx.Where("id = ? AND user_id = ?", memoryID, userID).First(&memory).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("回忆不存在或无权限操作")
			}
			return err
		}

		if memory.PhotoURL == nil {
			return fmt.Errorf("该回忆没有照片")
		}

		var size int64
		path := filepath.Join(s.uploadPath, strings.TrimPrefix(*memory.PhotoURL, "/uploads/"))
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}

		if err := tx.Model(&memory).Update("photo_url", nil).Error; err != nil {
			return err
		}

		return s.updateUserStorageInTx(tx, userID, -size)
	})
}

func saveUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
