package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"mindhaven/internal/apperr"
	"mindhaven/internal/config"
	"mindhaven/internal/model"
)

// Service manages the payment-order lifecycle. It is the only component
// in the system that talks to anything outside the process.
type Service struct {
	store   Store
	cfg     config.PayConfig
	signer  Signer
	gateway *GatewayClient
}

// NewService creates an order service over the injected store.
func NewService(store Store, cfg config.PayConfig) *Service {
	return &Service{
		store:   store,
		cfg:     cfg,
		signer:  NewMD5Signer(cfg.AppSecret),
		gateway: NewGatewayClient(cfg.APIURL),
	}
}

// CreateResult is what the caller needs to show a payment target.
type CreateResult struct {
	OrderID       string         `json:"orderId"`
	PaymentTarget string         `json:"paymentTarget"`
	IsMock        bool           `json:"isMock"`
	Gateway       map[string]any `json:"gateway,omitempty"`
}

// IsMockMode reports whether no real gateway is configured.
func (s *Service) IsMockMode() bool {
	return s.cfg.IsMockMode()
}

// Create registers a new pending order. In mock mode it returns a
// clearly-marked placeholder target without any network call; in real
// mode it relays a signed payload to the gateway. On a gateway failure
// the order stays pending so a later webhook can still resolve it.
func (s *Service) Create(ctx context.Context, amount, title string, channel model.Channel) (*CreateResult, error) {
	if amount == "" {
		return nil, apperr.Invalid("amount required")
	}

	id, err := newOrderID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	o := &model.Order{
		ID:        id,
		Status:    model.OrderPending,
		Amount:    amount,
		Title:     title,
		Channel:   channel,
		CreatedAt: time.Now(),
	}
	if err := s.store.Put(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	if s.IsMockMode() {
		log.Printf("[Mock Mode] Creating fake order: %s", id)
		return &CreateResult{
			OrderID:       id,
			PaymentTarget: "https://fake-payment.example.com/pay?id=" + id,
			IsMock:        true,
		}, nil
	}

	params := map[string]string{
		"version":        "1.1",
		"appid":          s.cfg.AppID,
		"trade_order_id": id,
		"total_fee":      amount,
		"title":          title,
		"time":           fmt.Sprintf("%d", time.Now().Unix()),
		"notify_url":     s.cfg.NotifyURL,
		"nonce_str":      id[len(id)-orderSuffixLen:],
	}
	params["hash"] = s.signer.Sign(params)

	doc, err := s.gateway.CreatePayment(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}

	target, _ := doc["url"].(string)
	return &CreateResult{
		OrderID:       id,
		PaymentTarget: target,
		Gateway:       doc,
	}, nil
}

// Status returns the current order status.
func (s *Service) Status(ctx context.Context, id string) (model.OrderStatus, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		return "", fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
	}
	return o.Status, nil
}

// Notify handles the inbound gateway webhook. The payload's keyed digest
// is verified before the order reference is trusted; an unverifiable
// payload is rejected. Unknown orders are ignored, and notifying an
// already-paid order is a no-op. The webhook may be delivered any
// number of times.
func (s *Service) Notify(ctx context.Context, payload map[string]string) error {
	if !verify(s.signer, payload) {
		return apperr.Invalid("bad notify signature")
	}

	id := payload["trade_order_id"]
	if id == "" {
		return apperr.Invalid("missing trade_order_id")
	}

	o, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		log.Printf("[Order] notify for unknown order %s ignored", id)
		return nil
	}

	changed, err := s.store.MarkPaid(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if changed {
		log.Printf("[Order] %s marked as PAID via webhook", id)
	}
	return nil
}

// ForceSuccess transitions an existing order to paid on the user's
// self-attestation. The payment model is trust-based: nobody verifies
// that funds actually moved.
func (s *Service) ForceSuccess(ctx context.Context, id string) error {
	changed, err := s.store.MarkPaid(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if changed {
		log.Printf("[Order] %s marked as PAID via self-attestation", id)
	}
	return nil
}

const (
	orderSuffixLen      = 6
	orderSuffixAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// newOrderID builds ORDER_<unix-ms>_<random suffix>. The millisecond
// timestamp plus six crypto/rand characters keeps collision probability
// effectively zero across the process lifetime.
func newOrderID() (string, error) {
	b := make([]byte, orderSuffixLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	suffix := make([]byte, orderSuffixLen)
	for i := range suffix {
		suffix[i] = orderSuffixAlphabet[int(b[i])%len(orderSuffixAlphabet)]
	}
	return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), suffix), nil
}
