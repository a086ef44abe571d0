package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/payment/gateway"
	"github.com/panaderia-next/internal/repository"
)

// PaymentService fronts the external card gateway: it creates charges
// for unpaid orders, verifies async notifications, and settles the
// refunds the cancellation policy records.
type PaymentService struct {
	cfg          config.PaymentConfig
	orderRepo    repository.OrderRepository
	orderService *OrderService
}

// NewPaymentService creates the payment service.
func NewPaymentService(cfg config.PaymentConfig, orderRepo repository.OrderRepository, orderService *OrderService) *PaymentService {
	return &PaymentService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		orderService: orderService,
	}
}

// Enabled reports whether the gateway is configured.
func (s *PaymentService) Enabled() bool {
	return s.cfg.Enabled
}

func (s *PaymentService) gatewayConfig() *gateway.Config {
	return &gateway.Config{
		GatewayURL:  s.cfg.GatewayURL,
		MerchantID:  s.cfg.MerchantID,
		MerchantKey: s.cfg.MerchantKey,
		ChargePath:  s.cfg.ChargePath,
		RefundPath:  s.cfg.RefundPath,
		NotifyURL:   s.cfg.NotifyURL,
		ReturnURL:   s.cfg.ReturnURL,
	}
}

// StartCharge creates a gateway charge for an unpaid order and returns
// the payment URL for the customer.
func (s *PaymentService) StartCharge(ctx context.Context, orderNo, clientIP string) (*gateway.ChargeResult, error) {
	if !s.cfg.Enabled {
		return nil, ErrPaymentDisabled
	}
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderCancelNotAllowed
	}

	result, err := gateway.CreateCharge(ctx, s.gatewayConfig(), gateway.ChargeInput{
		OrderNo:  order.OrderNo,
		Amount:   order.TotalAmount.StringFixed(2),
		Currency: order.Currency,
		Subject:  order.OrderNo,
		ClientIP: strings.TrimSpace(clientIP),
	})
	if err != nil {
		logger.Warnw("payment_create_charge_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, err
	}
	return result, nil
}

// HandleNotify verifies an async gateway notification and marks the
// order paid on a successful charge. The returned order number lets
// the handler acknowledge the gateway.
func (s *PaymentService) HandleNotify(form url.Values) (string, error) {
	if !s.cfg.Enabled {
		return "", ErrPaymentDisabled
	}
	if err := gateway.VerifyCallback(s.gatewayConfig(), form); err != nil {
		return "", err
	}
	orderNo := strings.TrimSpace(form.Get("out_trade_no"))
	if orderNo == "" {
		return "", gateway.ErrResponseInvalid
	}
	if !strings.EqualFold(strings.TrimSpace(form.Get("trade_status")), "paid") {
		// Not a capture; acknowledged but nothing to record.
		return orderNo, nil
	}

	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", ErrOrderNotFound
	}
	method := strings.TrimSpace(form.Get("method"))
	if method == "" {
		method = constants.PaymentMethodOnline
	}
	if _, err := s.orderService.MarkPaid(order.ID, method); err != nil {
		return "", err
	}
	return orderNo, nil
}

// SettleRefund pushes a cancellation's pending refund to the gateway
// and records the outcome. Zero refunds settle locally without a
// gateway call.
func (s *PaymentService) SettleRefund(ctx context.Context, actor Actor, orderID uint) error {
	if !CanOverrideRefund(actor) {
		return ErrPermissionDenied
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusCancelled || order.RefundStatus != constants.RefundStatusPending {
		return ErrRefundNotPending
	}

	target := constants.RefundStatusProcessed
	if order.RefundAmount.IsPositive() && order.PaymentStatus == constants.PaymentStatusPaid {
		if !s.cfg.Enabled {
			return ErrPaymentDisabled
		}
		if err := gateway.Refund(ctx, s.gatewayConfig(), gateway.RefundInput{
			OrderNo: order.OrderNo,
			Amount:  order.RefundAmount.StringFixed(2),
			Reason:  order.CancelReason,
		}); err != nil {
			logger.Warnw("payment_refund_failed",
				"order_no", order.OrderNo,
				"error", err,
			)
			return err
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"refund_status": target,
		"updated_at":    now,
	}
	if order.RefundAmount.IsPositive() && order.PaymentStatus == constants.PaymentStatusPaid {
		updates["payment_status"] = constants.PaymentStatusRefunded
	}
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, updates)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderConflict
	}
	return nil
}
