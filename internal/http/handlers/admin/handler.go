package admin

import "github.com/tshirt-admin/internal/provider"

// Handler 관리 API 처리기
// 이 도구는 내부 관리자 전용이라 모든 라우트가 이 처리기를 거친다.
type Handler struct {
	*provider.Container
}

// New 관리 처리기 생성
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
