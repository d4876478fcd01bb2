package pricetrend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidRequest = errors.New("invalid prediction request")
	ErrUnknownCrop    = errors.New("no price trend for crop")
)

// Rand is the randomness a Predictor draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Predictor produces sell/hold advice from the current trend board. The
// model is a bounded random walk around the current price.
type Predictor struct {
	trends  []Trend
	latency time.Duration
	now     func() time.Time

	mu  sync.Mutex
	rnd Rand
}

type PredictorOptions struct {
	// Latency simulates model evaluation time.
	Latency time.Duration
	Now     func() time.Time
	Rand    Rand
}

func NewPredictor(trends []Trend, opts PredictorOptions) *Predictor {
	p := &Predictor{
		trends:  trends,
		latency: opts.Latency,
		now:     opts.Now,
		rnd:     opts.Rand,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.rnd == nil {
		p.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

// Predict prices req.Crop a short horizon ahead. The predicted price stays
// within 10% of the current price, confidence is 70 to 94 and the best time
// to sell falls one to eight days from now.
func (p *Predictor) Predict(ctx context.Context, req PredictionRequest) (*Prediction, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "predictor"),
		zap.String("method", "Predict"),
	)

	if err := validation.Struct(req); err != nil {
		log.Warn("invalid prediction request", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	trend, ok := Find(p.trends, req.Crop)
	if !ok {
		log.Warn("unknown crop", zap.String("crop", req.Crop))
		return nil, fmt.Errorf("%w: %s", ErrUnknownCrop, req.Crop)
	}

	if err := p.wait(ctx); err != nil {
		log.Info("prediction abandoned", zap.Error(err))
		return nil, err
	}

	p.mu.Lock()
	drift, action, conf, days := p.rnd.Float64(), p.rnd.Float64(), p.rnd.Float64(), p.rnd.Float64()
	p.mu.Unlock()

	factor := decimal.NewFromFloat(1 + (drift*0.2 - 0.1))
	out := &Prediction{
		Crop:           trend.Crop,
		Quantity:       req.Quantity,
		Unit:           trend.Unit,
		CurrentPrice:   trend.CurrentPrice,
		PredictedPrice: trend.CurrentPrice.Mul(factor).Round(2),
		Recommendation: ActionHold,
		Confidence:     70 + int(math.Floor(conf*25)),
		BestTimeToSell: p.now().Add(time.Duration((days*7 + 1) * float64(24*time.Hour))),
	}
	if action > 0.3 {
		out.Recommendation = ActionSell
	}

	log.Info("prediction ready",
		zap.String("crop", out.Crop),
		zap.String("recommendation", string(out.Recommendation)),
		zap.Int("confidence", out.Confidence),
	)
	return out, nil
}

func (p *Predictor) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
