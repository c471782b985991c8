package handlers

import (
	"errors"
	"net/http"
	"strings"

	"memories-backend/internal/services"
	"memories-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiService     *services.AIService
	memoryService *services.MemoryService
}

func NewAIHandler(aiService *services.AIService, memoryService *services.MemoryService) *AIHandler {
	return &AIHandler{
		aiService:     aiService,
		memoryService: memoryService,
	}
}

type beautifyRequest struct {
	Content string `json:"content"`
}

type transcribeRequest struct {
	Audio string `json:"audio"`
}

// GenerateReflection 汇总用户全部回忆生成诗意回顾。外部调用失败时
// 照样返回兜底文案，错误只用于前端提示，不阻塞页面；不自动重试
func (h *AIHandler) GenerateReflection(c *gin.Context) {
	userID, _ := c.Get("user_id")

	memories, err := h.memoryService.GetAllMemoriesByUser(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	stats, err := h.memoryService.GetUserStats(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	reflection, genErr := h.aiService.GenerateReflection(memories, int(stats.TotalNotebooks))

	data := gin.H{"reflection": reflection}
	switch {
	case genErr == nil:
		utils.Success(c, data)
	case errors.Is(genErr, services.ErrAIRateLimited):
		data["error"] = "请求过于频繁，请稍后再试"
		utils.SuccessWithMessage(c, "已使用默认回顾", data)
	case errors.Is(genErr, services.ErrAIQuotaExceeded):
		data["error"] = "AI 额度已用完"
		utils.SuccessWithMessage(c, "已使用默认回顾", data)
	default:
		data["error"] = "回顾生成失败"
		utils.SuccessWithMessage(c, "已使用默认回顾", data)
	}
}

// BeautifyContent 单独的润色预览接口，失败时返回原文
func (h *AIHandler) BeautifyContent(c *gin.Context) {
	var req beautifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		utils.ValidationError(c, "内容不能为空")
		return
	}

	beautified, err := h.aiService.BeautifyContent(req.Content)
	if err != nil {
		// 降级返回原文
		utils.SuccessWithMessage(c, "润色服务不可用，已返回原文", gin.H{
			"beautified_content": req.Content,
		})
		return
	}

	utils.Success(c, gin.H{"beautified_content": beautified})
}

// TranscribeAudio 接收 base64 音频并返回转写文本
func (h *AIHandler) TranscribeAudio(c *gin.Context) {
	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if req.Audio == "" {
		utils.ValidationError(c, "音频数据不能为空")
		return
	}

	text, err := h.aiService.TranscribeAudio(req.Audio)
	if err != nil {
		if errors.Is(err, services.ErrAIRateLimited) {
			utils.Error(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			return
		}
		utils.Error(c, http.StatusBadGateway, "语音转写失败")
		return
	}

	utils.Success(c, gin.H{"text": text})
}
