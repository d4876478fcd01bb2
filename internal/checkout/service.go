package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"agrimart-be/internal/cart"
	"agrimart-be/internal/catalog"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"
	"agrimart-be/internal/store"
	"agrimart-be/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Carts is the slice of the cart service checkout depends on.
type Carts interface {
	Get(ctx context.Context, ownerID string) (*cart.Cart, error)
	Clear(ctx context.Context, ownerID string) error
}

type Service interface {
	Start(ctx context.Context, ownerID string) (*Session, error)
	Get(ctx context.Context, ownerID, sessionID string) (*Session, error)
	SetShipping(ctx context.Context, ownerID, sessionID string, addr Address) (*Session, error)
	Pay(ctx context.Context, ownerID, sessionID string, method PaymentMethod) (*Order, error)
	Orders(ctx context.Context, ownerID, status string) ([]Order, error)
}

type Options struct {
	// PaymentTimeout bounds a single Gateway.Charge call; zero means no
	// bound beyond the caller's context.
	PaymentTimeout time.Duration
	Now            func() time.Time
	Entropy        io.Reader
}

type service struct {
	store   store.Store
	carts   Carts
	gateway Gateway
	opts    Options

	// sessions serializes steps of one checkout; histories guards each
	// owner's order list. A slow charge only blocks its own session.
	sessions  keyedMutex
	histories keyedMutex
}

func NewService(st store.Store, carts Carts, gateway Gateway, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{store: st, carts: carts, gateway: gateway, opts: opts}
}

func sessionKey(id string) string { return "checkout:" + id }

// OrdersKey is the store key holding ownerID's order history.
func OrdersKey(ownerID string) string { return "orders:" + ownerID }

func (s *service) Start(ctx context.Context, ownerID string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Start"),
	)

	if ownerID == "" {
		return nil, cart.ErrUserNotAuthenticated
	}

	c, err := s.carts.Get(ctx, ownerID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.opts.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Step:      StepShipping,
		Items:     c.Items,
		Summary:   cart.Summarize(c.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	log.Info("checkout started", zap.String("session_id", sess.ID), zap.Int("items", len(sess.Items)))
	return sess, nil
}

func (s *service) Get(ctx context.Context, ownerID, sessionID string) (*Session, error) {
	return s.loadSession(ctx, ownerID, sessionID)
}

func (s *service) SetShipping(ctx context.Context, ownerID, sessionID string, addr Address) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetShipping"),
		zap.String("session_id", sessionID),
	)

	defer s.sessions.lock(sessionID)()

	sess, err := s.loadSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	// the address may be corrected until payment succeeds
	if sess.Step == StepConfirmation {
		return nil, ErrInvalidStep
	}

	addr = trimAddress(addr)
	if err := validation.Struct(addr); err != nil {
		log.Warn("invalid shipping address", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	sess.Address = &addr
	sess.Step = StepPayment
	sess.UpdatedAt = s.opts.Now().UTC()
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Pay(ctx context.Context, ownerID, sessionID string, method PaymentMethod) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Pay"),
		zap.String("session_id", sessionID),
		zap.String("payment_method", string(method.Type)),
	)

	defer s.sessions.lock(sessionID)()

	sess, err := s.loadSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment || sess.Address == nil {
		return nil, ErrInvalidStep
	}

	// a previous attempt charged and recorded the order but failed to
	// confirm the session; finish it without charging again
	if prev, err := s.findOrder(ctx, ownerID, sess.ID); err != nil {
		return nil, err
	} else if prev != nil {
		log.Warn("resuming confirmation of recorded order", zap.String("order_number", prev.Number))
		return s.confirm(ctx, log, sess, prev)
	}

	now := s.opts.Now()
	number := NewOrderNumber(now, s.opts.Entropy)

	chargeCtx := ctx
	if s.opts.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		chargeCtx, cancel = context.WithTimeout(ctx, s.opts.PaymentTimeout)
		defer cancel()
	}

	receipt, err := s.gateway.Charge(chargeCtx, ChargeRequest{
		OrderNumber: number,
		Amount:      sess.Summary.Total,
		Method:      method,
	})
	metrics.CheckoutPayments.WithLabelValues(string(method.Type), metrics.OutcomeOf(err)).Inc()
	if err != nil {
		log.Warn("payment failed", zap.Error(err))
		return nil, err
	}

	order := &Order{
		Number:        number,
		SessionID:     sess.ID,
		OwnerID:       ownerID,
		Items:         sess.Items,
		Summary:       sess.Summary,
		Address:       *sess.Address,
		PaymentMethod: method.Type,
		ReceiptID:     receipt.ID,
		Status:        StatusProcessing,
		PlacedAt:      now.UTC(),
	}
	if err := s.appendOrder(ctx, *order); err != nil {
		log.Error("failed to record order", zap.Error(err))
		return nil, err
	}

	return s.confirm(ctx, log, sess, order)
}

// confirm moves sess to the confirmation step for order and clears the cart.
func (s *service) confirm(ctx context.Context, log *zap.Logger, sess *Session, order *Order) (*Order, error) {
	sess.Step = StepConfirmation
	sess.OrderNumber = order.Number
	sess.UpdatedAt = s.opts.Now().UTC()
	if err := s.saveSession(ctx, sess); err != nil {
		log.Error("failed to confirm session", zap.String("order_number", order.Number), zap.Error(err))
		return nil, err
	}

	if err := s.carts.Clear(ctx, sess.OwnerID); err != nil {
		// the order is already recorded
		log.Error("failed to clear cart after order", zap.Error(err))
	}

	log.Info("order placed", zap.String("order_number", order.Number), zap.String("total", order.Summary.Total.String()))
	return order, nil
}

// Orders returns ownerID's orders, newest first. An empty status or "All"
// returns every order; otherwise status matches case-insensitively.
func (s *service) Orders(ctx context.Context, ownerID, status string) ([]Order, error) {
	if ownerID == "" {
		return nil, cart.ErrUserNotAuthenticated
	}

	orders, err := s.loadOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	status = strings.TrimSpace(status)
	out := make([]Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		if status == "" || strings.EqualFold(status, catalog.All) || strings.EqualFold(status, string(o.Status)) {
			out = append(out, o)
		}
	}
	return out, nil
}

/* ---------- STORAGE ---------- */

func (s *service) loadSession(ctx context.Context, ownerID, sessionID string) (*Session, error) {
	raw, err := s.store.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	// sessions are private; another owner's id reads as missing
	if sess.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *service) saveSession(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey(sess.ID), raw)
}

func (s *service) loadOrders(ctx context.Context, ownerID string) ([]Order, error) {
	raw, err := s.store.Get(ctx, OrdersKey(ownerID))
	if errors.Is(err, store.ErrNotFound) {
		return []Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// findOrder returns the order recorded for sessionID, or nil.
func (s *service) findOrder(ctx context.Context, ownerID, sessionID string) (*Order, error) {
	defer s.histories.lock(ownerID)()

	orders, err := s.loadOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].SessionID == sessionID {
			return &orders[i], nil
		}
	}
	return nil, nil
}

func (s *service) appendOrder(ctx context.Context, o Order) error {
	defer s.histories.lock(o.OwnerID)()

	orders, err := s.loadOrders(ctx, o.OwnerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}

	raw, err := json.Marshal(append(orders, o))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	if err := s.store.Set(ctx, OrdersKey(o.OwnerID), raw); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveOrder, err)
	}
	return nil
}

func trimAddress(a Address) Address {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Mobile = strings.TrimSpace(a.Mobile)
	a.Pincode = strings.TrimSpace(a.Pincode)
	a.Line1 = strings.TrimSpace(a.Line1)
	a.Line2 = strings.TrimSpace(a.Line2)
	a.Landmark = strings.TrimSpace(a.Landmark)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	return a
}
