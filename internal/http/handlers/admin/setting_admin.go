package admin

import (
	"errors"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSettings 설정 조회
func (h *Handler) GetSettings(c *gin.Context) {
	key := c.DefaultQuery("key", constants.SettingKeyStoreConfig)

	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeBadRequest, "알 수 없는 설정 키입니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "설정 조회에 실패했습니다", err)
		return
	}
	if value == nil {
		response.Success(c, gin.H{})
		return
	}

	response.Success(c, value)
}

// UpdateSettingsRequest 설정 저장 요청
type UpdateSettingsRequest struct {
	Key   string                 `json:"key" binding:"required"`
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateSettings 설정 저장 (마지막 저장이 이긴다)
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	value, err := h.SettingService.Update(req.Key, req.Value)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeBadRequest, "알 수 없는 설정 키입니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "설정 저장에 실패했습니다", err)
		return
	}

	response.Success(c, value)
}
