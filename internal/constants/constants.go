package constants

// Order status constants
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusInProgress     = "in_progress"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

// Order type constants
const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Delivery sub-status constants
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

// Refund status constants
const (
	RefundStatusPending   = "pending"
	RefundStatusProcessed = "processed"
	RefundStatusFailed    = "failed"
)

// Payment method constants
const (
	PaymentMethodCard   = "card"
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// Staff role constants
const (
	RoleOwner  = "owner"
	RoleBaker  = "baker"
	RoleDriver = "driver"
)

// Order issue category constants
const (
	IssueCategoryQuality    = "quality"
	IssueCategoryLate       = "late"
	IssueCategoryWrongItems = "wrong_items"
	IssueCategoryDamaged    = "damaged"
	IssueCategoryOther      = "other"
)

// Order issue priority constants
const (
	IssuePriorityLow    = "low"
	IssuePriorityNormal = "normal"
	IssuePriorityHigh   = "high"
)

// Order issue status constants
const (
	IssueStatusOpen     = "open"
	IssueStatusResolved = "resolved"
)

// Inventory unit constants
const (
	InventoryUnitKilogram = "kg"
	InventoryUnitGram     = "g"
	InventoryUnitLiter    = "l"
	InventoryUnitPiece    = "pc"
	InventoryUnitDozen    = "dozen"
)

// Menu item category constants
const (
	MenuCategoryBread  = "bread"
	MenuCategoryPastry = "pastry"
	MenuCategoryCake   = "cake"
	MenuCategoryCookie = "cookie"
	MenuCategoryDrink  = "drink"
	MenuCategoryOther  = "other"
)

// OrderStatuses lists every lifecycle status in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Report bucket labels for rows that carry no usable grouping value
const (
	ReportStatusUnknown     = "unknown"
	ReportCustomerUnknown   = "Unknown"
	ReportBucketUnspecified = "unspecified"
)

// Sentinel time used to sort undated deliveries last
const (
	TimeNeededUnspecified = "23:59"
)

// Captcha provider constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Queue constants
const (
	QueueDefault          = "default"
	TaskOrderStatusEmail  = "order:status_email"
	TaskInventoryLowStock = "inventory:low_stock_alert"
	TaskOrderExpireUnpaid = "order:expire_unpaid"
	TaskReportDailyDigest = "report:daily_digest"
)

// Cache default prefix constants
const (
	RedisPrefixDefault = "pn"
)

// Setting key constants
const (
	SettingKeyBakeryConfig  = "bakery_config"
	SettingKeySMTPConfig    = "smtp_config"
	SettingKeyCaptchaConfig = "captcha_config"
	SettingKeyRefundConfig  = "refund_config"
)

// Currency constants
const (
	SiteCurrencyDefault = "USD"
)

// Site language constants
const (
	LocaleEnUS = "en-US"
	LocaleEsES = "es-ES"
)

// Supported site languages in fallback order
var SupportedLocales = []string{LocaleEnUS, LocaleEsES}

// Export format constants
const (
	ExportFormatCSV = "csv"
)

// DeliveryStatusPriority orders today's delivery queue; lower sorts earlier.
var DeliveryStatusPriority = map[string]int{
	DeliveryStatusPending:   0,
	DeliveryStatusAssigned:  1,
	DeliveryStatusInTransit: 2,
	DeliveryStatusFailed:    3,
	DeliveryStatusDelivered: 4,
}
