package product

import "agrimart-be/internal/catalog"

// NewProductInput is the payload for listing a new product.
type NewProductInput struct {
	Name             string  `json:"name" validate:"required,max=120"`
	Description      string  `json:"description" validate:"max=2000"`
	Category         string  `json:"category" validate:"required"`
	Subcategory      string  `json:"subcategory"`
	Variety          string  `json:"variety"`
	Price            float64 `json:"price" validate:"gt=0"`
	Unit             string  `json:"unit" validate:"required"`
	MinOrderQuantity float64 `json:"minOrderQuantity" validate:"gte=0"`
	StockQuantity    int     `json:"stockQuantity" validate:"gte=0"`
	Location         string  `json:"location" validate:"required"`
	Seller           string  `json:"seller"`
	IsOrganic        bool    `json:"isOrganic"`
	ImageURL         string  `json:"imageUrl" validate:"omitempty,uri"`
}

func (in NewProductInput) toProduct() catalog.Product {
	return catalog.Product{
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Subcategory:      in.Subcategory,
		Variety:          in.Variety,
		Price:            in.Price,
		Unit:             in.Unit,
		MinOrderQuantity: in.MinOrderQuantity,
		StockQuantity:    in.StockQuantity,
		Location:         in.Location,
		Seller:           in.Seller,
		IsOrganic:        in.IsOrganic,
		ImageURL:         in.ImageURL,
	}
}
