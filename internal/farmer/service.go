package farmer

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

//go:embed seed/farmers.json
var seedFarmers []byte

var ErrFarmerNotFound = errors.New("farmer not found")

// SeedDirectory decodes the bundled farmer directory.
func SeedDirectory() ([]Farmer, error) {
	var farmers []Farmer
	if err := json.Unmarshal(seedFarmers, &farmers); err != nil {
		return nil, fmt.Errorf("decode seed farmers: %w", err)
	}
	return farmers, nil
}

type Service interface {
	Search(ctx context.Context, term string) []Farmer
	GetByID(ctx context.Context, id int64) (*Farmer, error)
}

type service struct {
	farmers []Farmer
}

// NewService serves a fixed directory. The slice is copied.
func NewService(farmers []Farmer) Service {
	cp := make([]Farmer, len(farmers))
	copy(cp, farmers)
	return &service{farmers: cp}
}

func (s *service) Search(ctx context.Context, term string) []Farmer {
	res := Search(s.farmers, term)
	logger.FromCtx(ctx).Debug("farmer search",
		zap.String("layer", "service"),
		zap.String("term", term),
		zap.Int("count", len(res)),
	)
	return res
}

func (s *service) GetByID(ctx context.Context, id int64) (*Farmer, error) {
	for _, f := range s.farmers {
		if f.ID == id {
			out := f
			out.Products = append([]string(nil), f.Products...)
			return &out, nil
		}
	}
	logger.FromCtx(ctx).Warn("farmer not found",
		zap.String("layer", "service"),
		zap.Int64("farmer_id", id),
	)
	return nil, ErrFarmerNotFound
}
