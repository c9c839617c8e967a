package admin

import (
	"errors"

	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// SmartstoreSyncRequest 스마트스토어 동기화 요청
type SmartstoreSyncRequest struct {
	SinceDays int `json:"since_days"`
}

// AdminRequestSmartstoreSync 스마트스토어 주문 동기화 작업 예약
func (h *Handler) AdminRequestSmartstoreSync(c *gin.Context) {
	var req SmartstoreSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	if err := h.SmartstoreService.RequestSync(req.SinceDays); err != nil {
		switch {
		case errors.Is(err, service.ErrSmartstoreNotConfigured):
			respondError(c, response.CodeBadRequest, "스마트스토어 연동 설정이 필요합니다", nil)
		case errors.Is(err, service.ErrQueueUnavailable):
			respondError(c, response.CodeInternal, "큐가 비활성화되어 동기화를 예약할 수 없습니다", nil)
		default:
			respondError(c, response.CodeInternal, "동기화 예약에 실패했습니다", err)
		}
		return
	}

	response.SuccessWithMsg(c, "동기화 작업을 예약했습니다", nil)
}
