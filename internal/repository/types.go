package repository

import "time"

// OrderListFilter holds order list query conditions.
type OrderListFilter struct {
	Page           int
	PageSize       int
	CustomerID     uint
	Status         string
	Statuses       []string
	OrderType      string
	DeliveryStatus string
	DriverID       uint
	OrderNo        string
	Phone          string
	Search         string
	DateNeeded     string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// IssueListFilter holds order issue list query conditions.
type IssueListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	Category    string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MenuListFilter holds menu item list query conditions.
type MenuListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Search        string
	OnlyAvailable bool
}

// InventoryListFilter holds inventory list query conditions.
type InventoryListFilter struct {
	Page         int
	PageSize     int
	Search       string
	OnlyLowStock bool
}

// StaffListFilter holds staff list query conditions.
type StaffListFilter struct {
	Page       int
	PageSize   int
	Role       string
	OnlyActive bool
}
