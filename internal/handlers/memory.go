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

type MemoryHandler struct {
	memoryService *services.MemoryService
	validator     *validator.Validate
}

func NewMemoryHandler(memoryService *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{
		memoryService: memoryService,
		validator:     appvalidator.GetValidator(),
	}
}

func (h *MemoryHandler) GetMemories(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	var req models.MemoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 设置默认值
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Order == "" {
		req.Order = "desc"
	}

	memories, pagination, err := h.memoryService.GetMemories(uint(notebookID), userID.(uint), &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"memories":   memories,
		"pagination": pagination,
	})
}

func (h *MemoryHandler) GetMemory(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	memory, err := h.memoryService.GetMemoryByID(uint(memoryID), userID.(uint))
	if err != nil {
		utils.NotFound(c, "回忆不存在")
		return
	}

	utils.Success(c, memory)
}

func (h *MemoryHandler) CreateMemory(c *gin.Context) {
	userID, _ := c.Get("user_id")
	notebookIDStr := c.Param("id")

	notebookID, err := strconv.ParseUint(notebookIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的笔记本ID")
		return
	}

	var req models.MemoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	memory, err := h.memoryService.CreateMemory(uint(notebookID), userID.(uint), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "创建成功", memory)
}

func (h *MemoryHandler) UpdateMemory(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	var req models.MemoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	memory, err := h.memoryService.UpdateMemory(uint(memoryID), userID.(uint), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "更新成功", memory)
}

func (h *MemoryHandler) DeleteMemory(c *gin.Context) {
	userID, _ := c.Get("user_id")
	memoryIDStr := c.Param("id")

	memoryID, err := strconv.ParseUint(memoryIDStr, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的回忆ID")
		return
	}

	err = h.memoryService.DeleteMemory(uint(memoryID), userID.(uint))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

func (h *MemoryHandler) GetUserStats(c *gin.Context) {
	userID, _ := c.Get("user_id")

	stats, err := h.memoryService.GetUserStats(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, stats)
}

// GetUserTimeline 用户全部回忆的月度情绪时间线
func (h *MemoryHandler) GetUserTimeline(c *gin.Context) {
	userID, _ := c.Get("user_id")

	memories, err := h.memoryService.GetAllMemoriesByUser(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"timeline": services.AggregateTimeline(memories, time.Now()),
		"stats":    services.CountSentiments(memories),
	})
}
