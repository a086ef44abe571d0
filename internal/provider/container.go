package provider

import (
	"github.com/panaderia-next/internal/authz"
	"github.com/panaderia-next/internal/cache"
	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/queue"
	"github.com/panaderia-next/internal/realtime"
	"github.com/panaderia-next/internal/repository"
	"github.com/panaderia-next/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Feed        *realtime.Feed
	Hub         *realtime.Hub

	// Repositories
	OrderRepo     repository.OrderRepository
	NoteRepo      repository.OrderNoteRepository
	IssueRepo     repository.OrderIssueRepository
	MenuRepo      repository.MenuRepository
	InventoryRepo repository.InventoryRepository
	StaffRepo     repository.StaffRepository
	CustomerRepo  repository.CustomerRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CustomerAuthService *service.CustomerAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	SettingService      *service.SettingService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	DeliveryService     *service.DeliveryService
	ReportService       *service.ReportService
	ExportService       *service.ExportService
	MenuService         *service.MenuService
	InventoryService    *service.InventoryService
	IssueService        *service.IssueService
	StaffService        *service.StaffService
	DashboardService    *service.DashboardService
}

// NewContainer initializes the dependency container.
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
		Feed:        realtime.NewFeed(),
	}

	c.initRepositories()
	c.initServices()

	c.Hub = realtime.NewHub()
	c.Hub.Attach(c.Feed)

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.NoteRepo = repository.NewOrderNoteRepository(db)
	c.IssueRepo = repository.NewOrderIssueRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.StaffRepo = repository.NewStaffRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.SettingService = service.NewSettingService(c.SettingRepo, c.EmailService, c.Config.Email)
	if err := c.SettingService.ApplyStartupOverrides(); err != nil {
		logger.Warnw("provider_apply_setting_overrides_failed", "error", err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.StaffRepo)
	c.CustomerAuthService = service.NewCustomerAuthService(c.Config, c.CustomerRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.NoteRepo, c.MenuRepo, c.StaffRepo, c.QueueClient, c.Feed, c.Config.Bakery)
	c.PaymentService = service.NewPaymentService(c.Config.Payment, c.OrderRepo, c.OrderService)
	location := c.OrderService.Location()
	c.DeliveryService = service.NewDeliveryService(c.OrderRepo, c.StaffRepo, c.Feed, location)
	c.ReportService = service.NewReportService(c.OrderRepo, location)
	c.ExportService = service.NewExportService(c.OrderRepo, location)
	c.MenuService = service.NewMenuService(c.MenuRepo)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo, c.QueueClient, c.Feed)
	c.IssueService = service.NewIssueService(c.IssueRepo, c.OrderRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo)
	c.DashboardService = service.NewDashboardService(c.OrderRepo, c.InventoryRepo, c.ReportService, location)
}
