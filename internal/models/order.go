package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the order table.
type Order struct {
	ID                    uint   `gorm:"primarykey" json:"id"`
	OrderNo               string `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerID            *uint  `gorm:"index" json:"customer_id,omitempty"` // nil for guest orders
	CustomerName          string `gorm:"type:varchar(200);not null" json:"customer_name"`
	CustomerPhone         string `gorm:"type:varchar(40);index" json:"customer_phone"`
	CustomerEmail         string `gorm:"type:varchar(200);index" json:"customer_email,omitempty"`
	Locale                string `gorm:"type:varchar(20)" json:"locale,omitempty"`
	OrderType             string `gorm:"index;not null" json:"order_type"` // pickup / delivery
	Status                string `gorm:"index;not null" json:"status"`
	DeliveryStatus        string `gorm:"index" json:"delivery_status,omitempty"` // empty for pickup orders
	DriverID              *uint  `gorm:"index" json:"driver_id,omitempty"`
	DriverNotes           string `gorm:"type:text" json:"driver_notes,omitempty"`
	EstimatedDeliveryTime string `gorm:"type:varchar(40)" json:"estimated_delivery_time,omitempty"`

	AddressStreet    string `gorm:"type:varchar(200)" json:"address_street,omitempty"`
	AddressApartment string `gorm:"type:varchar(100)" json:"address_apartment,omitempty"`
	AddressCity      string `gorm:"type:varchar(100)" json:"address_city,omitempty"`
	AddressState     string `gorm:"type:varchar(50)" json:"address_state,omitempty"`
	AddressZip       string `gorm:"type:varchar(20)" json:"address_zip,omitempty"`
	AddressFull      string `gorm:"type:varchar(500)" json:"address_full,omitempty"`
	AddressVerified  bool   `gorm:"not null;default:false" json:"address_verified"`
	DeliveryZone     string `gorm:"type:varchar(100)" json:"delivery_zone,omitempty"`

	CakeSize          string `gorm:"type:varchar(50);index" json:"cake_size,omitempty"`
	CakeFilling       string `gorm:"type:varchar(100)" json:"cake_filling,omitempty"`
	CakeTheme         string `gorm:"type:varchar(500)" json:"cake_theme,omitempty"`
	Dedication        string `gorm:"type:varchar(500)" json:"dedication,omitempty"`
	ReferenceImageURL string `gorm:"type:varchar(500)" json:"reference_image_url,omitempty"`

	DateNeeded string `gorm:"type:varchar(10);index" json:"date_needed"` // YYYY-MM-DD
	TimeNeeded string `gorm:"type:varchar(5)" json:"time_needed"`        // HH:MM, 23:59 when unspecified

	Currency       string `gorm:"not null" json:"currency"`
	Subtotal       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	DeliveryFee    Money  `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`
	TaxAmount      Money  `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`
	DiscountAmount Money  `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	TotalAmount    Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	PaymentStatus  string `gorm:"index;not null;default:'pending'" json:"payment_status"`
	PaymentMethod  string `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	RefundAmount   Money  `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`
	RefundPercent  int    `gorm:"not null;default:0" json:"refund_percent"`
	RefundStatus   string `gorm:"type:varchar(20)" json:"refund_status,omitempty"` // pending / processed / failed
	CancelReason   string `gorm:"type:varchar(500)" json:"cancellation_reason,omitempty"`

	ConfirmedAt *time.Time `gorm:"index" json:"confirmed_at,omitempty"`
	ReadyAt     *time.Time `gorm:"index" json:"ready_at,omitempty"`
	DeliveredAt *time.Time `gorm:"index" json:"delivered_at,omitempty"`
	CompletedAt *time.Time `gorm:"index" json:"completed_at,omitempty"`
	CancelledAt *time.Time `gorm:"index" json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Notes  []OrderNote `gorm:"foreignKey:OrderID" json:"notes,omitempty"`
	Driver *Staff      `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// IsDelivery reports whether the order is a delivery order.
func (o *Order) IsDelivery() bool {
	return o.OrderType == "delivery"
}

// NeededAt combines date_needed and time_needed in the given location.
// The zero time is returned when date_needed is unset or malformed.
func (o *Order) NeededAt(loc *time.Location) time.Time {
	if o.DateNeeded == "" {
		return time.Time{}
	}
	timePart := o.TimeNeeded
	if timePart == "" {
		timePart = "23:59"
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", o.DateNeeded+" "+timePart, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OrderItem is the order line-item table, holding a snapshot of the
// menu item at purchase time.
type OrderItem struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	OrderID             uint           `gorm:"index;not null" json:"order_id"`
	MenuItemID          uint           `gorm:"index;not null" json:"menu_item_id"`
	Name                string         `gorm:"type:varchar(200);not null" json:"name"`
	UnitPrice           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity            int            `gorm:"not null" json:"quantity"`
	TotalPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	SpecialInstructions string         `gorm:"type:varchar(500)" json:"special_instructions,omitempty"`
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
