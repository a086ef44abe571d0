package service

import (
	"sort"
	"strings"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService derives reporting aggregates from order rows. The
// aggregation itself is pure: it reads a slice of orders and returns
// computed summaries, so every breakdown is checkable against the
// totals it came from.
type ReportService struct {
	orderRepo repository.OrderRepository
	location  *time.Location
}

// NewReportService creates the report service.
func NewReportService(orderRepo repository.OrderRepository, location *time.Location) *ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportService{orderRepo: orderRepo, location: location}
}

// DailyRevenue is one day's revenue bucket.
type DailyRevenue struct {
	Date       string       `json:"date"`
	OrderCount int          `json:"order_count"`
	Revenue    models.Money `json:"revenue"`
}

// CakeSizeRevenue is revenue grouped by cake size.
type CakeSizeRevenue struct {
	CakeSize   string       `json:"cake_size"`
	OrderCount int          `json:"order_count"`
	Revenue    models.Money `json:"revenue"`
}

// RevenueSummary is the revenue report for a window of orders.
type RevenueSummary struct {
	TotalRevenue models.Money      `json:"total_revenue"`
	OrderCount   int               `json:"order_count"`
	ByDay        []DailyRevenue    `json:"by_day"`
	ByCakeSize   []CakeSizeRevenue `json:"by_cake_size"`
}

// StatusCount is an order count for one lifecycle status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// WeekdayCount is an order count for one weekday, Sunday through
// Saturday.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// VolumeSummary is the order volume report.
type VolumeSummary struct {
	Total       int            `json:"total"`
	ByStatus    []StatusCount  `json:"by_status"`
	ByOrderType []StatusCount  `json:"by_order_type"`
	ByWeekday   []WeekdayCount `json:"by_weekday"`
	PeakWeekday string         `json:"peak_weekday"`
}

// CustomerSummary is one customer's row in the customer report.
type CustomerSummary struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	OrderCount  int          `json:"order_count"`
	TotalSpent  models.Money `json:"total_spent"`
	Repeat      bool         `json:"repeat"`
	LastOrderAt time.Time    `json:"last_order_at"`
}

// ReportWindow loads the orders created inside [from, to) for the
// derived reports.
func (s *ReportService) ReportWindow(from, to time.Time) ([]models.Order, error) {
	return s.orderRepo.ListCreatedBetween(from, to)
}

// Revenue builds the revenue report for a window of orders. Cancelled
// orders do not count toward revenue. Days with no orders are simply
// absent, and every per-day and per-size bucket sums back to the
// total.
func (s *ReportService) Revenue(orders []models.Order) RevenueSummary {
	return ComputeRevenue(orders)
}

// Volume builds the order volume report.
func (s *ReportService) Volume(orders []models.Order) VolumeSummary {
	return ComputeVolume(orders, s.location)
}

// Customers builds the customer report.
func (s *ReportService) Customers(orders []models.Order) []CustomerSummary {
	return ComputeCustomers(orders)
}

// ComputeRevenue aggregates revenue over the given orders.
func ComputeRevenue(orders []models.Order) RevenueSummary {
	total := decimal.Zero
	count := 0
	byDay := make(map[string]*DailyRevenue)
	bySize := make(map[string]*CakeSizeRevenue)

	for i := range orders {
		order := &orders[i]
		if order.Status == constants.OrderStatusCancelled {
			continue
		}
		amount := order.TotalAmount.Decimal
		total = total.Add(amount)
		count++

		day := order.DateNeeded
		if day == "" {
			day = order.CreatedAt.Format("2006-01-02")
		}
		d, ok := byDay[day]
		if !ok {
			d = &DailyRevenue{Date: day}
			byDay[day] = d
		}
		d.OrderCount++
		d.Revenue = models.NewMoneyFromDecimal(d.Revenue.Add(amount))

		size := strings.TrimSpace(order.CakeSize)
		if size == "" {
			size = constants.ReportBucketUnspecified
		}
		c, ok := bySize[size]
		if !ok {
			c = &CakeSizeRevenue{CakeSize: size}
			bySize[size] = c
		}
		c.OrderCount++
		c.Revenue = models.NewMoneyFromDecimal(c.Revenue.Add(amount))
	}

	days := make([]DailyRevenue, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	sizes := make([]CakeSizeRevenue, 0, len(bySize))
	for _, c := range bySize {
		sizes = append(sizes, *c)
	}
	sort.Slice(sizes, func(i, j int) bool {
		if !sizes[i].Revenue.Equal(sizes[j].Revenue.Decimal) {
			return sizes[i].Revenue.GreaterThan(sizes[j].Revenue.Decimal)
		}
		return sizes[i].CakeSize < sizes[j].CakeSize
	})

	return RevenueSummary{
		TotalRevenue: models.NewMoneyFromDecimal(total),
		OrderCount:   count,
		ByDay:        days,
		ByCakeSize:   sizes,
	}
}

// ComputeVolume aggregates order counts by status, order type and
// weekday. Rows with an empty or unrecognized status fall into the
// "unknown" bucket so the breakdown always sums to the total.
func ComputeVolume(orders []models.Order, location *time.Location) VolumeSummary {
	if location == nil {
		location = time.Local
	}
	byStatus := make(map[string]int)
	byType := make(map[string]int)
	weekdays := make([]int, 7)

	known := make(map[string]bool, len(constants.OrderStatuses))
	for _, st := range constants.OrderStatuses {
		known[st] = true
	}

	for i := range orders {
		order := &orders[i]
		status := order.Status
		if !known[status] {
			status = constants.ReportStatusUnknown
		}
		byStatus[status]++

		orderType := order.OrderType
		if orderType != constants.OrderTypePickup && orderType != constants.OrderTypeDelivery {
			orderType = constants.ReportStatusUnknown
		}
		byType[orderType]++

		weekdays[int(order.CreatedAt.In(location).Weekday())]++
	}

	statuses := make([]StatusCount, 0, len(byStatus))
	for _, st := range constants.OrderStatuses {
		if n := byStatus[st]; n > 0 {
			statuses = append(statuses, StatusCount{Status: st, Count: n})
		}
	}
	if n := byStatus[constants.ReportStatusUnknown]; n > 0 {
		statuses = append(statuses, StatusCount{Status: constants.ReportStatusUnknown, Count: n})
	}

	types := make([]StatusCount, 0, len(byType))
	for _, t := range []string{constants.OrderTypePickup, constants.OrderTypeDelivery, constants.ReportStatusUnknown} {
		if n := byType[t]; n > 0 {
			types = append(types, StatusCount{Status: t, Count: n})
		}
	}

	byWeekday := make([]WeekdayCount, 7)
	peak := 0
	for i := 0; i < 7; i++ {
		byWeekday[i] = WeekdayCount{
			Weekday: time.Weekday(i).String(),
			Count:   weekdays[i],
		}
		if weekdays[i] > weekdays[peak] {
			peak = i
		}
	}
	peakWeekday := ""
	if len(orders) > 0 {
		peakWeekday = time.Weekday(peak).String()
	}

	return VolumeSummary{
		Total:       len(orders),
		ByStatus:    statuses,
		ByOrderType: types,
		ByWeekday:   byWeekday,
		PeakWeekday: peakWeekday,
	}
}

// ComputeCustomers groups orders into per-customer rows. Identity is
// the email when present, else the customer name, else a shared
// "Unknown" bucket. Rows come back sorted by total spent descending.
func ComputeCustomers(orders []models.Order) []CustomerSummary {
	byKey := make(map[string]*CustomerSummary)
	for i := range orders {
		order := &orders[i]
		key := customerKey(order)
		row, ok := byKey[key]
		if !ok {
			row = &CustomerSummary{
				Key:   key,
				Name:  strings.TrimSpace(order.CustomerName),
				Email: strings.TrimSpace(order.CustomerEmail),
			}
			if row.Name == "" {
				row.Name = key
			}
			byKey[key] = row
		}
		row.OrderCount++
		if order.Status != constants.OrderStatusCancelled {
			row.TotalSpent = models.NewMoneyFromDecimal(row.TotalSpent.Add(order.TotalAmount.Decimal))
		}
		if order.CreatedAt.After(row.LastOrderAt) {
			row.LastOrderAt = order.CreatedAt
		}
	}

	rows := make([]CustomerSummary, 0, len(byKey))
	for _, row := range byKey {
		row.Repeat = row.OrderCount > 1
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSpent.Equal(rows[j].TotalSpent.Decimal) {
			return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent.Decimal)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func customerKey(order *models.Order) string {
	if email := strings.ToLower(strings.TrimSpace(order.CustomerEmail)); email != "" {
		return email
	}
	if name := strings.TrimSpace(order.CustomerName); name != "" {
		return name
	}
	return constants.ReportCustomerUnknown
}
