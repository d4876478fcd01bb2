package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID        int64   `json:"productId"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Unit             string  `json:"unit"`
	Quantity         float64 `json:"quantity"`
	MinOrderQuantity float64 `json:"minOrderQuantity"`
	Seller           string  `json:"seller,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
}

// LineTotal is price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromFloat(i.Quantity))
}

type Cart struct {
	OwnerID   string    `json:"ownerId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cart) find(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Summary is the priced breakdown of a cart. Amounts are rounded to two
// decimal places.
type Summary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

var (
	FreeShippingThreshold = decimal.NewFromInt(1000)
	FlatShipping          = decimal.NewFromInt(50)
	TaxRate               = decimal.NewFromFloat(0.18)
)

// Summarize prices items: shipping is free above FreeShippingThreshold and
// FlatShipping otherwise; tax is TaxRate of the subtotal.
func Summarize(items []Item) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) || len(items) == 0 {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return Summary{
		ItemCount: len(items),
		Subtotal:  subtotal.Round(2),
		Shipping:  shipping.Round(2),
		Tax:       tax.Round(2),
		Total:     subtotal.Add(shipping).Add(tax).Round(2),
	}
}
