package pricetrend

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllCrops is the category value that disables the crop filter.
const AllCrops = "All Crops"

// Categories are the crop groups offered by the trends page.
var Categories = []string{AllCrops, "Cereals", "Pulses", "Vegetables", "Fruits", "Spices", "Cash Crops"}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Trend is the latest mandi price observation for a crop in one region.
type Trend struct {
	ID            int64           `json:"id"`
	Crop          string          `json:"crop"`
	Location      string          `json:"location"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	Direction     Direction       `json:"direction"`
	ChangePercent float64         `json:"changePercent"`
	Unit          string          `json:"unit"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

// Action is the suggested move for a holder of the crop.
type Action string

const (
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

type PredictionRequest struct {
	Crop     string  `json:"crop" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

type Prediction struct {
	Crop           string          `json:"crop"`
	Quantity       float64         `json:"quantity"`
	Unit           string          `json:"unit"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	PredictedPrice decimal.Decimal `json:"predictedPrice"`
	Recommendation Action          `json:"recommendation"`
	Confidence     int             `json:"confidence"`
	BestTimeToSell time.Time       `json:"bestTimeToSell"`
}
