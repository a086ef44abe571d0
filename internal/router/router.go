package router

import (
	"fmt"
	"strings"

	"github.com/panaderia-next/internal/cache"
	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	adminhandlers "github.com/panaderia-next/internal/http/handlers/admin"
	publichandlers "github.com/panaderia-next/internal/http/handlers/public"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP API.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/menu", publicHandler.GetMenu)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/captcha/scenes", publicHandler.CaptchaScenes)
		}

		guest := apiV1.Group("/guest")
		{
			guest.POST("/orders", publicHandler.CreateGuestOrder)
			guest.GET("/orders/track", publicHandler.TrackOrder)
			guest.POST("/orders/pay", publicHandler.StartPayment)
			guest.POST("/issues", publicHandler.ReportIssue)
		}

		// Signed gateway callback, no auth.
		apiV1.POST("/payments/notify", publicHandler.PaymentNotify)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.CustomerRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.CustomerLogin)
		}

		customer := apiV1.Group("")
		customer.Use(CustomerJWTAuthMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			customer.GET("/me", publicHandler.GetMyProfile)
			customer.PUT("/me/profile", publicHandler.UpdateMyProfile)
			customer.POST("/orders", publicHandler.CreateCustomerOrder)
			customer.GET("/orders", publicHandler.ListMyOrders)
			customer.GET("/orders/:id", publicHandler.GetMyOrder)
			customer.POST("/orders/:id/cancel", publicHandler.CancelMyOrder)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIP), adminHandler.StaffLogin)

			authorized := admin.Use(
				StaffJWTAuthMiddleware(cfg.JWT.SecretKey, c.StaffRepo),
				StaffRBACMiddleware(c.AuthzService),
			)
			{
				authorized.POST("/logout", adminHandler.StaffLogout)
				authorized.PUT("/password", adminHandler.ChangeStaffPassword)
				authorized.GET("/me", adminHandler.GetCurrentStaff)

				authorized.GET("/dashboard", adminHandler.AdminDashboardOverview)

				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.POST("/orders/:id/cancel", adminHandler.AdminCancelOrder)
				authorized.POST("/orders/:id/paid", adminHandler.AdminMarkOrderPaid)
				authorized.POST("/orders/:id/refund/settle", adminHandler.AdminSettleRefund)
				authorized.POST("/orders/:id/discount", adminHandler.AdminApplyDiscount)
				authorized.GET("/orders/:id/notes", adminHandler.AdminListOrderNotes)
				authorized.POST("/orders/:id/notes", adminHandler.AdminAddOrderNote)

				authorized.GET("/deliveries", adminHandler.AdminListDeliveries)
				authorized.GET("/deliveries/drivers", adminHandler.AdminListDrivers)
				authorized.POST("/deliveries/:id/assign", adminHandler.AdminAssignDriver)
				authorized.POST("/deliveries/:id/start", adminHandler.AdminStartDelivery)
				authorized.POST("/deliveries/:id/delivered", adminHandler.AdminMarkDelivered)
				authorized.POST("/deliveries/:id/failed", adminHandler.AdminMarkDeliveryFailed)
				authorized.POST("/deliveries/:id/retry", adminHandler.AdminRetryDelivery)
				authorized.PATCH("/deliveries/:id/notes", adminHandler.AdminUpdateDriverNotes)

				authorized.GET("/menu-items", adminHandler.AdminListMenuItems)
				authorized.GET("/menu-items/:id", adminHandler.AdminGetMenuItem)
				authorized.POST("/menu-items", adminHandler.AdminCreateMenuItem)
				authorized.PUT("/menu-items/:id", adminHandler.AdminUpdateMenuItem)
				authorized.PATCH("/menu-items/:id/availability", adminHandler.AdminSetMenuItemAvailability)
				authorized.DELETE("/menu-items/:id", adminHandler.AdminDeleteMenuItem)

				authorized.GET("/inventory", adminHandler.AdminListInventory)
				authorized.GET("/inventory/low-stock", adminHandler.AdminListLowStock)
				authorized.GET("/inventory/:id", adminHandler.AdminGetInventoryItem)
				authorized.POST("/inventory", adminHandler.AdminCreateInventoryItem)
				authorized.PUT("/inventory/:id", adminHandler.AdminUpdateInventoryItem)
				authorized.POST("/inventory/:id/adjust", adminHandler.AdminAdjustInventory)
				authorized.POST("/inventory/:id/restock", adminHandler.AdminRestockInventory)
				authorized.DELETE("/inventory/:id", adminHandler.AdminDeleteInventoryItem)

				authorized.GET("/issues", adminHandler.AdminListIssues)
				authorized.GET("/issues/:id", adminHandler.AdminGetIssue)
				authorized.POST("/issues/:id/resolve", adminHandler.AdminResolveIssue)

				authorized.GET("/staff", adminHandler.AdminListStaff)
				authorized.GET("/staff/:id", adminHandler.AdminGetStaff)
				authorized.POST("/staff", adminHandler.AdminCreateStaff)
				authorized.PUT("/staff/:id", adminHandler.AdminUpdateStaff)
				authorized.PATCH("/staff/:id/active", adminHandler.AdminSetStaffActive)
				authorized.POST("/staff/:id/reset-password", adminHandler.AdminResetStaffPassword)

				authorized.GET("/settings/:key", adminHandler.AdminGetSetting)
				authorized.PUT("/settings/:key", adminHandler.AdminPutSetting)
				authorized.POST("/settings/smtp/test", adminHandler.AdminTestSMTP)

				authorized.GET("/reports/revenue", adminHandler.AdminRevenueReport)
				authorized.GET("/reports/volume", adminHandler.AdminVolumeReport)
				authorized.GET("/reports/customers", adminHandler.AdminCustomerReport)
				authorized.GET("/reports/export", adminHandler.AdminExportOrders)
			}
		}
	}

	// Live order board updates.
	r.GET("/ws", c.Hub.ServeWS)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
