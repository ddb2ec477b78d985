package model

import (
	"math"
	"time"
)

// SaleID identifies a Sale.
type SaleID = EntityID[Sale]

// SaleDetailID identifies a SaleDetail.
type SaleDetailID = EntityID[SaleDetail]

// Sale represents one sale of one or more vegetables.
type Sale struct {
	ID          SaleID       `json:"id" db:"id"`
	SoldAt      time.Time    `json:"soldAt" db:"sold_at"`
	TotalAmount int64        `json:"totalAmount" db:"total_amount"`
	Details     []SaleDetail `json:"details,omitempty"`
}

// SaleDetail represents a line item of a sale.
type SaleDetail struct {
	ID          SaleDetailID `json:"id" db:"id"`
	SaleID      SaleID       `json:"-" db:"sale_id"`
	VegetableID VegetableID  `json:"vegetableId" db:"vegetable_id"`
	UnitPrice   Price        `json:"unitPrice" db:"unit_price"`
	Quantity    Quantity     `json:"quantity" db:"quantity"`
}

// Subtotal returns unit price times quantity.
func (d SaleDetail) Subtotal() int64 {
	return d.UnitPrice.Int64() * d.Quantity.Int64()
}

// NewSaleDetail builds a line item with a fresh identifier.
func NewSaleDetail(vegetableID VegetableID, unitPrice Price, quantity Quantity) SaleDetail {
	return SaleDetail{
		ID:          NewEntityID[SaleDetail](),
		VegetableID: vegetableID,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}
}

// NewSale builds a sale from its line items. The total is computed here
// and carried as-is from then on.
func NewSale(soldAt time.Time, details []SaleDetail) (*Sale, error) {
	if len(details) == 0 {
		return nil, ErrEmptySale
	}

	sale := &Sale{
		ID:      NewEntityID[Sale](),
		SoldAt:  soldAt,
		Details: make([]SaleDetail, len(details)),
	}
	for i, d := range details {
		if d.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if d.UnitPrice < 0 {
			return nil, ErrInvalidUnitPrice
		}
		sub := d.Subtotal()
		if sale.TotalAmount > math.MaxInt64-sub {
			return nil, ErrSaleTotalOutOfRange
		}
		d.SaleID = sale.ID
		sale.Details[i] = d
		sale.TotalAmount += sub
	}

	return sale, nil
}

// SaleRequest represents the request payload for registering a sale.
type SaleRequest struct {
	SoldAt *time.Time        `json:"soldAt,omitempty"`
	Items  []SaleItemRequest `json:"items"`
}

// SaleItemRequest represents a single item in a sale request.
// UnitPrice defaults to the vegetable's current price when omitted.
type SaleItemRequest struct {
	VegetableID string `json:"vegetableId"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   *int64 `json:"unitPrice,omitempty"`
}
