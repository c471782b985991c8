package handlers

import (
	"memories-backend/internal/models"
	"memories-backend/internal/services"
	"memories-backend/internal/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	appvalidator "memories-backend/pkg/validator"
)

type NotebookHandler struct {
	notebookService *services.NotebookService
	memoryService   *services.MemoryService
	validator       *validator.Validate
}

func NewNotebookHandler(notebookService *services.NotebookService, memoryService *services.MemoryService) *NotebookHandler {
	return &NotebookHandler{
		notebookService: notebookService,
		memoryService:   memoryService,
		validator:       appvalidator.GetValidator(),
	}
}

func (h *NotebookHandler) GetNotebooks(c *gin.Context) {
	userID, _ := c.Get("user_id")

	notebooks, err := h.notebookService.GetNotebooks(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, notebooks)
}

func (h *NotebookHandler) GetNotebook(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	notebook, err := h.notebookService.GetNotebookByID(uint(notebookID), userID.(uint))
	if err != nil {
		utils.NotFound(c, "笔记本不存在")
		return
	}

	utils.Success(c, notebook)
}

func (h *NotebookHandler) CreateNotebook(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.NotebookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	notebook, err := h.notebookService.CreateNotebook(userID.(uint), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "创建成功", notebook)
}

func (h *NotebookHandler) UpdateNotebook(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	var req models.NotebookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	notebook, err := h.notebookService.UpdateNotebook(uint(notebookID), userID.(uint), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "更新成功", notebook)
}

func (h *NotebookHandler) DeleteNotebook(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	err = h.notebookService.DeleteNotebook(uint(notebookID), userID.(uint))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// GetNotebookTimeline 单本笔记本的月度情绪时间线
func (h *NotebookHandler) GetNotebookTimeline(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	if _, err := h.notebookService.GetNotebookByID(uint(notebookID), userID.(uint)); err != nil {
		utils.NotFound(c, "笔记本不存在")
		return
	}

	memories, err := h.memoryService.GetMemoriesByNotebook(uint(notebookID), userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"timeline": services.AggregateTimeline(memories, time.Now()),
		"stats":    services.CountSentiments(memories),
	})
}
