package model

import "math"

// Price is a non-negative amount stored in a Postgres integer column.
type Price int32

// NewPrice validates and converts an amount to a Price.
func NewPrice(value int64) (Price, error) {
	if value < 0 || value > math.MaxInt32 {
		return 0, ErrInvalidUnitPrice
	}
	return Price(value), nil
}

// Int64 returns the price as an int64.
func (p Price) Int64() int64 {
	return int64(p)
}

// Quantity is a sold quantity; it is always at least one.
type Quantity int32

// NewQuantity validates and converts a count to a Quantity.
func NewQuantity(value int64) (Quantity, error) {
	if value < 1 || value > math.MaxInt32 {
		return 0, ErrInvalidQuantity
	}
	return Quantity(value), nil
}

// Int64 returns the quantity as an int64.
func (q Quantity) Int64() int64 {
	return int64(q)
}
