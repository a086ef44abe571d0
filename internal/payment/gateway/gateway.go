package gateway

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("gateway config invalid")
	ErrRequestFailed    = errors.New("gateway request failed")
	ErrResponseInvalid  = errors.New("gateway response invalid")
	ErrSignatureInvalid = errors.New("gateway signature invalid")
)

// Config holds the merchant credentials and endpoints for the card
// gateway.
type Config struct {
	GatewayURL  string
	MerchantID  string
	MerchantKey string
	ChargePath  string
	RefundPath  string
	NotifyURL   string
	ReturnURL   string
}

func (c *Config) normalize() {
	if c.ChargePath == "" {
		c.ChargePath = "/api/charge/create"
	}
	if c.RefundPath == "" {
		c.RefundPath = "/api/charge/refund"
	}
}

// Validate checks the config is complete enough to create charges.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.GatewayURL) == "" {
		return fmt.Errorf("%w: gateway_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MerchantID) == "" {
		return fmt.Errorf("%w: merchant_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MerchantKey) == "" {
		return fmt.Errorf("%w: merchant_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.NotifyURL) == "" {
		return fmt.Errorf("%w: notify_url is required", ErrConfigInvalid)
	}
	return nil
}

// ChargeInput is one charge creation request.
type ChargeInput struct {
	OrderNo  string
	Amount   string
	Currency string
	Subject  string
	ClientIP string
}

// ChargeResult is the gateway's answer to a charge creation.
type ChargeResult struct {
	PayURL   string
	ChargeNo string
	Raw      map[string]interface{}
}

// CreateCharge posts a signed charge request to the gateway and
// returns the customer-facing payment URL.
func CreateCharge(ctx context.Context, cfg *Config, input ChargeInput) (*ChargeResult, error) {
	if cfg == nil {
		return nil, ErrConfigInvalid
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if input.OrderNo == "" || input.Amount == "" {
		return nil, ErrConfigInvalid
	}
	if input.Subject == "" {
		input.Subject = input.OrderNo
	}

	params := map[string]string{
		"merchant_id":  cfg.MerchantID,
		"out_trade_no": input.OrderNo,
		"amount":       input.Amount,
		"currency":     input.Currency,
		"subject":      input.Subject,
		"client_ip":    input.ClientIP,
		"notify_url":   cfg.NotifyURL,
		"return_url":   cfg.ReturnURL,
	}
	params["sign"] = Sign(params, cfg.MerchantKey)

	respBytes, err := postForm(ctx, endpoint(cfg.GatewayURL, cfg.ChargePath), params)
	if err != nil {
		return nil, ErrRequestFailed
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)
	var resp struct {
		Code     int    `json:"code"`
		Msg      string `json:"msg"`
		ChargeNo string `json:"charge_no"`
		PayURL   string `json:"pay_url"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, ErrResponseInvalid
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, resp.Msg)
	}
	return &ChargeResult{
		PayURL:   strings.TrimSpace(resp.PayURL),
		ChargeNo: strings.TrimSpace(resp.ChargeNo),
		Raw:      raw,
	}, nil
}

// RefundInput is one refund settlement request.
type RefundInput struct {
	OrderNo string
	Amount  string
	Reason  string
}

// Refund posts a signed refund request for a previously captured
// charge.
func Refund(ctx context.Context, cfg *Config, input RefundInput) error {
	if cfg == nil {
		return ErrConfigInvalid
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return err
	}
	if input.OrderNo == "" || input.Amount == "" {
		return ErrConfigInvalid
	}

	params := map[string]string{
		"merchant_id":  cfg.MerchantID,
		"out_trade_no": input.OrderNo,
		"amount":       input.Amount,
		"reason":       input.Reason,
	}
	params["sign"] = Sign(params, cfg.MerchantKey)

	respBytes, err := postForm(ctx, endpoint(cfg.GatewayURL, cfg.RefundPath), params)
	if err != nil {
		return ErrRequestFailed
	}
	var resp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return ErrResponseInvalid
	}
	if resp.Code != 0 {
		return fmt.Errorf("%w: %s", ErrResponseInvalid, resp.Msg)
	}
	return nil
}

// VerifyCallback checks the signature on an async notify form.
func VerifyCallback(cfg *Config, form url.Values) error {
	if cfg == nil {
		return ErrConfigInvalid
	}
	sign := strings.TrimSpace(form.Get("sign"))
	if sign == "" {
		return ErrSignatureInvalid
	}
	params := make(map[string]string, len(form))
	for key := range form {
		params[key] = form.Get(key)
	}
	expected := Sign(params, cfg.MerchantKey)
	if !strings.EqualFold(expected, sign) {
		return ErrSignatureInvalid
	}
	return nil
}

// Sign computes the md5 signature over the sorted key=value pairs,
// skipping empty values and the sign fields themselves.
func Sign(params map[string]string, merchantKey string) string {
	sum := md5.Sum([]byte(signContent(params) + merchantKey))
	return strings.ToLower(hex.EncodeToString(sum[:]))
}

func signContent(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "sign" || k == "sign_type" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return strings.Join(pairs, "&")
}

func endpoint(gatewayURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(gatewayURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func postForm(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrRequestFailed
	}
	return io.ReadAll(resp.Body)
}
