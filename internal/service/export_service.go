package service

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

// NormalizeExportFormat resolves a requested export format. Empty
// means CSV, the only format the export writer produces.
func NormalizeExportFormat(requested string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(requested))
	if format == "" || format == constants.ExportFormatCSV {
		return constants.ExportFormatCSV, nil
	}
	return "", ErrValidationFailed
}

// ExportService writes order data as RFC 4180 CSV for spreadsheet
// import. Fields containing commas, quotes or newlines are quoted and
// embedded quotes doubled by the encoder.
type ExportService struct {
	orderRepo repository.OrderRepository
	location  *time.Location
}

// NewExportService creates the export service.
func NewExportService(orderRepo repository.OrderRepository, location *time.Location) *ExportService {
	if location == nil {
		location = time.Local
	}
	return &ExportService{orderRepo: orderRepo, location: location}
}

var orderExportHeader = []string{
	"order_no",
	"created_at",
	"status",
	"order_type",
	"delivery_status",
	"customer_name",
	"customer_phone",
	"customer_email",
	"date_needed",
	"time_needed",
	"cake_size",
	"cake_filling",
	"cake_theme",
	"dedication",
	"address",
	"subtotal",
	"delivery_fee",
	"total_amount",
	"payment_status",
	"refund_amount",
	"cancellation_reason",
}

// ExportOrdersCreatedBetween streams orders created in [from, to) as CSV.
func (s *ExportService) ExportOrdersCreatedBetween(w io.Writer, from, to time.Time) error {
	orders, err := s.orderRepo.ListCreatedBetween(from, to)
	if err != nil {
		return err
	}
	return s.WriteOrdersCSV(w, orders)
}

// WriteOrdersCSV writes the given orders as CSV, header row first.
func (s *ExportService) WriteOrdersCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderExportHeader); err != nil {
		return err
	}
	for i := range orders {
		if err := cw.Write(s.orderExportRow(&orders[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) orderExportRow(order *models.Order) []string {
	return []string{
		order.OrderNo,
		order.CreatedAt.In(s.location).Format(time.RFC3339),
		order.Status,
		order.OrderType,
		order.DeliveryStatus,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.DateNeeded,
		order.TimeNeeded,
		order.CakeSize,
		order.CakeFilling,
		order.CakeTheme,
		order.Dedication,
		order.AddressFull,
		order.Subtotal.String(),
		order.DeliveryFee.String(),
		order.TotalAmount.String(),
		order.PaymentStatus,
		order.RefundAmount.String(),
		order.CancelReason,
	}
}

// ExportFilename builds the attachment filename for an export run.
func ExportFilename(now time.Time) string {
	return "orders-" + now.Format("20060102-150405") + "." + constants.ExportFormatCSV
}
