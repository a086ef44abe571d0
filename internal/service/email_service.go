package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/i18n"
	"github.com/panaderia-next/internal/models"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig swaps the runtime SMTP configuration.
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// OrderStatusEmailInput carries what the status notification needs.
type OrderStatusEmailInput struct {
	OrderNo      string
	Status       string
	CustomerName string
	OrderType    string
	DateNeeded   string
	TimeNeeded   string
	Total        models.Money
	Currency     string
	RefundAmount models.Money
}

// SendOrderStatusEmail sends the notification for an order status
// change, localized to the customer's locale.
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendLowStockAlert notifies staff that an ingredient fell to or below
// its reorder threshold.
func (s *EmailService) SendLowStockAlert(toEmail string, item *models.InventoryItem, locale string) error {
	normalized := i18n.Normalize(locale)
	subject := i18n.Sprintf(normalized, "email.low_stock.subject", item.Name)
	body := i18n.Sprintf(normalized, "email.low_stock.body",
		item.Name, item.Quantity.String(), item.Unit, item.ReorderThreshold.String())
	return s.sendTextEmail(toEmail, subject, body)
}

// DailyDigestInput carries the previous day's figures for the owner
// digest email.
type DailyDigestInput struct {
	Date       string
	OrderCount int
	Revenue    models.Money
	Currency   string
	Cancelled  int
}

// SendDailyDigest mails the previous day's order and revenue summary.
func (s *EmailService) SendDailyDigest(toEmail string, input DailyDigestInput, locale string) error {
	subject, body := buildDailyDigestContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func buildDailyDigestContent(input DailyDigestInput, locale string) (string, string) {
	normalized := i18n.Normalize(locale)
	subject := i18n.Sprintf(normalized, "email.daily_digest.subject", input.Date)
	body := i18n.Sprintf(normalized, "email.daily_digest.body",
		input.Date, input.OrderCount, input.Revenue.String(), input.Currency, input.Cancelled)
	return subject, body
}

// SendCustomEmail sends a test or one-off email.
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is an SMTP test message. If you can read it, the mail configuration works."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	normalized := i18n.Normalize(locale)
	statusKey := "status." + strings.ToLower(strings.TrimSpace(input.Status))
	statusLabel := i18n.T(normalized, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	amount := input.Total.String()
	currency := strings.TrimSpace(input.Currency)
	subject := i18n.Sprintf(normalized, "email.order_status.subject", input.OrderNo, statusLabel)

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case constants.OrderStatusReady:
		body := i18n.Sprintf(normalized, "email.order_status.body_ready",
			input.CustomerName, input.OrderNo, input.DateNeeded, input.TimeNeeded)
		return subject, body
	case constants.OrderStatusOutForDelivery:
		body := i18n.Sprintf(normalized, "email.order_status.body_delivery",
			input.CustomerName, input.OrderNo)
		return subject, body
	case constants.OrderStatusCancelled:
		body := i18n.Sprintf(normalized, "email.order_status.body_cancelled",
			input.CustomerName, input.OrderNo, input.RefundAmount.String(), currency)
		return subject, body
	case constants.OrderStatusPending:
		subject = i18n.Sprintf(normalized, "email.order_confirmation.subject", input.OrderNo)
		body := i18n.Sprintf(normalized, "email.order_confirmation.body",
			input.CustomerName, input.OrderNo, amount, currency, input.DateNeeded)
		return subject, body
	default:
		body := i18n.Sprintf(normalized, "email.order_status.body",
			input.CustomerName, input.OrderNo, statusLabel, amount, currency)
		return subject, body
	}
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
