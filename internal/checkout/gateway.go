package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"agrimart-be/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway charges an order. Implementations must return promptly once ctx
// is done.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
}

type ChargeRequest struct {
	OrderNumber string
	Amount      decimal.Decimal
	Method      PaymentMethod
}

type Receipt struct {
	ID        string          `json:"id"`
	Method    MethodType      `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	ChargedAt time.Time       `json:"chargedAt"`
}

var cvvPattern = regexp.MustCompile(`^[0-9]{3,4}$`)

// SimulatedGateway stands in for a real processor: it waits Latency, then
// approves or declines by inspecting the payment details.
type SimulatedGateway struct {
	Latency time.Duration
	Now     func() time.Time
}

func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Latency: latency, Now: time.Now}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	now := g.now()
	switch req.Method.Type {
	case MethodCard:
		if err := checkCard(req.Method.Card, now); err != nil {
			return nil, err
		}
	case MethodUPI:
		if err := validation.Validator().Var(req.Method.UPIID, "required,upi"); err != nil {
			return nil, fmt.Errorf("%w: malformed UPI id", ErrPaymentDeclined)
		}
	case MethodCOD:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, req.Method.Type)
	}

	return &Receipt{
		ID:        "rcpt_" + uuid.NewString(),
		Method:    req.Method.Type,
		Amount:    req.Amount,
		ChargedAt: now.UTC(),
	}, nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.Latency <= 0 {
		return ctxErr(ctx.Err())
	}

	t := time.NewTimer(g.Latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctxErr(ctx.Err())
	case <-t.C:
		return nil
	}
}

func (g *SimulatedGateway) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func ctxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrPaymentTimeout
	}
	return err
}

func checkCard(c *Card, now time.Time) error {
	if c == nil {
		return fmt.Errorf("%w: card details missing", ErrInvalidPayment)
	}

	number := strings.ReplaceAll(strings.ReplaceAll(c.Number, " ", ""), "-", "")
	if !luhnValid(number) {
		return fmt.Errorf("%w: card number failed checksum", ErrPaymentDeclined)
	}
	if !cvvPattern.MatchString(c.CVV) {
		return fmt.Errorf("%w: bad CVV", ErrPaymentDeclined)
	}

	expires, err := parseExpiry(c.Expiry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if !now.Before(expires) {
		return fmt.Errorf("%w: card expired", ErrPaymentDeclined)
	}
	return nil
}

// parseExpiry returns the first instant after the card's last valid month.
func parseExpiry(s string) (time.Time, error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return time.Time{}, fmt.Errorf("expiry %q is not MM/YY", s)
	}
	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("expiry month %q", mm)
	}
	year, err := strconv.Atoi(yy)
	if err != nil || len(yy) != 2 {
		return time.Time{}, fmt.Errorf("expiry year %q", yy)
	}
	return time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC), nil
}

func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
