package admin

import (
	"github.com/tshirt-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 대시보드 요약
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	overview, err := h.DashboardService.Overview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "대시보드 조회에 실패했습니다", err)
		return
	}

	response.Success(c, overview)
}
