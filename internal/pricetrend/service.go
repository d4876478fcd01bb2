package pricetrend

import "context"

// Service exposes the trends board and the price predictor.
type Service interface {
	List(ctx context.Context, category, search string) []Trend
	Crops(ctx context.Context) []string
	Predict(ctx context.Context, req PredictionRequest) (*Prediction, error)
}

type service struct {
	trends    []Trend
	predictor *Predictor
}

func NewService(trends []Trend, predictor *Predictor) Service {
	return &service{trends: trends, predictor: predictor}
}

func (s *service) List(_ context.Context, category, search string) []Trend {
	return Filter(s.trends, category, search)
}

func (s *service) Crops(_ context.Context) []string {
	return Crops(s.trends)
}

func (s *service) Predict(ctx context.Context, req PredictionRequest) (*Prediction, error) {
	return s.predictor.Predict(ctx, req)
}
