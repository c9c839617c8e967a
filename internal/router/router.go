package router

import (
	"fmt"
	"strings"

	"github.com/tshirt-admin/internal/cache"
	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/constants"
	adminhandlers "github.com/tshirt-admin/internal/http/handlers/admin"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 라우터 초기화
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "로그인 시도가 너무 많습니다",
	}

	// 미들웨어
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 업로드된 파일 (시안 이미지, 발송 사진)
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 로그인 (인증 불필요)
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 인증이 필요한 라우트
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				// 대시보드
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)

				// 주문 관리
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/status-counts", adminHandler.AdminOrderStatusCounts)
				authorized.GET("/orders/schedule", adminHandler.AdminProductionSchedule)
				authorized.GET("/orders/settlements", adminHandler.AdminSettlementList)
				authorized.GET("/orders/sales", adminHandler.AdminSalesStatus)
				authorized.GET("/orders/archived", adminHandler.AdminArchivedOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.POST("/orders", adminHandler.AdminCreateManualOrder)
				authorized.PUT("/orders/:id", adminHandler.AdminUpdateOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.POST("/orders/:id/confirm-design", adminHandler.AdminConfirmDesign)
				authorized.POST("/orders/:id/completion", adminHandler.AdminRegisterCompletion)
				authorized.POST("/orders/:id/archive", adminHandler.AdminArchiveOrder)
				authorized.POST("/orders/:id/cancel", adminHandler.AdminCancelOrder)
				authorized.POST("/orders/complete", adminHandler.AdminCompleteOrders)
				authorized.POST("/orders/archive", adminHandler.AdminArchiveOrders)
				authorized.POST("/orders/export-shipping", adminHandler.AdminExportShippingList)

				// 고객 조회
				authorized.GET("/customers/check", adminHandler.AdminCheckCustomer)
				authorized.GET("/customers/:customer_id/orders", adminHandler.AdminCustomerOrders)

				// 상품 관리
				authorized.GET("/products", adminHandler.AdminListProducts)
				authorized.GET("/products/:id", adminHandler.AdminGetProduct)
				authorized.POST("/products", adminHandler.AdminCreateProduct)
				authorized.PUT("/products/:id", adminHandler.AdminUpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.AdminDeleteProduct)
				authorized.GET("/product-options/low-stock", adminHandler.AdminLowStockOptions)
				authorized.PATCH("/product-options/:option_id/stock", adminHandler.AdminAdjustOptionStock)

				// 지출/매입 장부
				authorized.GET("/expenses", adminHandler.AdminListExpenses)
				authorized.POST("/expenses", adminHandler.AdminCreateExpense)
				authorized.PUT("/expenses/:id", adminHandler.AdminUpdateExpense)
				authorized.DELETE("/expenses/:id", adminHandler.AdminDeleteExpense)
				authorized.GET("/purchases", adminHandler.AdminListPurchases)
				authorized.POST("/purchases", adminHandler.AdminCreatePurchase)
				authorized.PUT("/purchases/:id", adminHandler.AdminUpdatePurchase)
				authorized.DELETE("/purchases/:id", adminHandler.AdminDeletePurchase)

				// 정산/손익
				authorized.GET("/finance/summary", adminHandler.AdminProfitSummary)
				authorized.GET("/finance/monthly-sales", adminHandler.AdminMonthlySales)
				authorized.GET("/finance/expense-breakdown", adminHandler.AdminExpenseBreakdown)
				authorized.GET("/finance/purchase-breakdown", adminHandler.AdminPurchaseBreakdown)

				// 설정
				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 파일 업로드
				authorized.POST("/upload", adminHandler.UploadFile)

				// 스마트스토어 동기화
				authorized.POST("/smartstore/sync", adminHandler.AdminRequestSmartstoreSync)
			}
		}
	}

	// 헬스 체크
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
