package checkout

import (
	"time"

	"agrimart-be/internal/cart"
)

type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

type Address struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Mobile   string `json:"mobile" validate:"required,mobile"`
	Pincode  string `json:"pincode" validate:"required,pincode"`
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2,omitempty"`
	Landmark string `json:"landmark,omitempty"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
}

type MethodType string

const (
	MethodCard MethodType = "card"
	MethodUPI  MethodType = "upi"
	MethodCOD  MethodType = "cod"
)

type Card struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	// Expiry is MM/YY.
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type PaymentMethod struct {
	Type  MethodType `json:"type"`
	Card  *Card      `json:"card,omitempty"`
	UPIID string     `json:"upiId,omitempty"`
}

// Session is an in-progress checkout. Items and Summary are captured when
// the session starts.
type Session struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	Step        Step         `json:"step"`
	Items       []cart.Item  `json:"items"`
	Summary     cart.Summary `json:"summary"`
	Address     *Address     `json:"address,omitempty"`
	OrderNumber string       `json:"orderNumber,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusInTransit  OrderStatus = "In Transit"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

type Order struct {
	Number        string       `json:"number"`
	SessionID     string       `json:"sessionId"`
	OwnerID       string       `json:"ownerId"`
	Items         []cart.Item  `json:"items"`
	Summary       cart.Summary `json:"summary"`
	Address       Address      `json:"address"`
	PaymentMethod MethodType   `json:"paymentMethod"`
	ReceiptID     string       `json:"receiptId"`
	Status        OrderStatus  `json:"status"`
	PlacedAt      time.Time    `json:"placedAt"`
}
