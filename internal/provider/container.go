package provider

import (
	"github.com/tshirt-admin/internal/cache"
	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/queue"
	"github.com/tshirt-admin/internal/repository"
	"github.com/tshirt-admin/internal/service"
)

// Container 의존성 주입 컨테이너
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	OptionRepo   repository.ProductOptionRepository
	ExpenseRepo  repository.ExpenseRepository
	PurchaseRepo repository.PurchaseRepository
	SettingRepo  repository.SettingRepository
	FinanceRepo  repository.FinanceRepository

	// Services
	AuthService       *service.AuthService
	UploadService     *service.UploadService
	SettingService    *service.SettingService
	CustomerService   *service.CustomerService
	OrderService      *service.OrderService
	ProductService    *service.ProductService
	LedgerService     *service.LedgerService
	FinanceService    *service.FinanceService
	ExportService     *service.ExportService
	DashboardService  *service.DashboardService
	SmartstoreService *service.SmartstoreService
}

// NewContainer 컨테이너 초기화
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OptionRepo = repository.NewProductOptionRepository(db)
	c.ExpenseRepo = repository.NewExpenseRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.FinanceRepo = repository.NewFinanceRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.CustomerService = service.NewCustomerService(c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.OptionRepo, c.CustomerService, c.QueueClient, c.Config.Order)
	c.ProductService = service.NewProductService(c.ProductRepo, c.OptionRepo)
	c.LedgerService = service.NewLedgerService(c.ExpenseRepo, c.PurchaseRepo)
	c.FinanceService = service.NewFinanceService(c.FinanceRepo, c.ExpenseRepo, c.PurchaseRepo, c.Config.Finance.MarketplaceFeeRate)
	c.ExportService = service.NewExportService(c.OrderRepo, c.OrderService)
	c.DashboardService = service.NewDashboardService(c.OrderRepo, c.OptionRepo, c.FinanceRepo, c.ExpenseRepo, c.PurchaseRepo)
	c.SmartstoreService = service.NewSmartstoreService(c.SettingService, c.QueueClient)
}
