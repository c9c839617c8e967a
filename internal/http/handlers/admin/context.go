package admin

import (
	handlershared "github.com/tshirt-admin/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id", "관리자 식별자가 올바르지 않습니다", "관리자 식별자 형식이 올바르지 않습니다")
}
