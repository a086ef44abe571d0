package service

import (
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

// DashboardService assembles the back office landing page summary.
type DashboardService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	reportService *ReportService
	location      *time.Location
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(orderRepo repository.OrderRepository, inventoryRepo repository.InventoryRepository, reportService *ReportService, location *time.Location) *DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		reportService: reportService,
		location:      location,
	}
}

// DashboardSummary is the landing page payload.
type DashboardSummary struct {
	TodayOrderCount int                    `json:"today_order_count"`
	TodayRevenue    models.Money           `json:"today_revenue"`
	ActiveOrders    []StatusCount          `json:"active_orders"`
	TodayDeliveries []models.Order         `json:"today_deliveries"`
	LowStockItems   []models.InventoryItem `json:"low_stock_items"`
	WeekRevenue     models.Money           `json:"week_revenue"`
	WeekOrderCount  int                    `json:"week_order_count"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// Summary builds the dashboard for the current moment.
func (s *DashboardService) Summary(now time.Time) (*DashboardSummary, error) {
	local := now.In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	weekStart := dayStart.AddDate(0, 0, -6)

	weekOrders, err := s.orderRepo.ListCreatedBetween(weekStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	todayOrders := make([]models.Order, 0)
	for i := range weekOrders {
		if !weekOrders[i].CreatedAt.In(s.location).Before(dayStart) {
			todayOrders = append(todayOrders, weekOrders[i])
		}
	}

	todayRevenue := ComputeRevenue(todayOrders)
	weekRevenue := ComputeRevenue(weekOrders)

	activeOrders := activeStatusCounts(weekOrders)

	deliveries, err := s.orderRepo.ListDeliveriesForDate(local.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	SortDeliveries(deliveries)

	lowStock, err := s.inventoryRepo.ListLowStock()
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TodayOrderCount: len(todayOrders),
		TodayRevenue:    todayRevenue.TotalRevenue,
		ActiveOrders:    activeOrders,
		TodayDeliveries: deliveries,
		LowStockItems:   lowStock,
		WeekRevenue:     weekRevenue.TotalRevenue,
		WeekOrderCount:  len(weekOrders),
		GeneratedAt:     now,
	}, nil
}

func activeStatusCounts(orders []models.Order) []StatusCount {
	active := []string{
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusInProgress,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
	}
	counts := make(map[string]int)
	for i := range orders {
		counts[orders[i].Status]++
	}
	result := make([]StatusCount, 0, len(active))
	for _, status := range active {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}
	return result
}
