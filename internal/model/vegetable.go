package model

import (
	"strings"
	"time"
)

// VegetableID identifies a Vegetable.
type VegetableID = EntityID[Vegetable]

// Vegetable represents a vegetable in the catalogue.
type Vegetable struct {
	ID        EntityID[Vegetable] `json:"id" db:"id"`
	Name      string              `json:"name" db:"name"`
	UnitPrice Price               `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`
}

// UpsertVegetable carries every writable field; used to register and to replace.
type UpsertVegetable struct {
	Name      string
	UnitPrice Price
}

// PartialVegetable carries the fields of a patch. Nil means not supplied.
type PartialVegetable struct {
	Name      *string
	UnitPrice *Price
}

// IsEmpty reports whether no field was supplied.
func (p PartialVegetable) IsEmpty() bool {
	return p.Name == nil && p.UnitPrice == nil
}

// UpsertVegetableRequest is the request payload for POST and PUT.
type UpsertVegetableRequest struct {
	Name      string `json:"name"`
	UnitPrice *int64 `json:"unitPrice"`
}

// Validate converts the request into an UpsertVegetable.
func (r *UpsertVegetableRequest) Validate() (UpsertVegetable, error) {
	name, err := normaliseName(r.Name)
	if err != nil {
		return UpsertVegetable{}, err
	}
	if r.UnitPrice == nil {
		return UpsertVegetable{}, ErrInvalidUnitPrice
	}
	price, err := NewPrice(*r.UnitPrice)
	if err != nil {
		return UpsertVegetable{}, err
	}
	return UpsertVegetable{Name: name, UnitPrice: price}, nil
}

// PartialVegetableRequest is the request payload for PATCH.
type PartialVegetableRequest struct {
	Name      *string `json:"name,omitempty"`
	UnitPrice *int64  `json:"unitPrice,omitempty"`
}

// Validate converts the request into a PartialVegetable.
func (r *PartialVegetableRequest) Validate() (PartialVegetable, error) {
	var patch PartialVegetable
	if r.Name != nil {
		name, err := normaliseName(*r.Name)
		if err != nil {
			return PartialVegetable{}, err
		}
		patch.Name = &name
	}
	if r.UnitPrice != nil {
		price, err := NewPrice(*r.UnitPrice)
		if err != nil {
			return PartialVegetable{}, err
		}
		patch.UnitPrice = &price
	}
	return patch, nil
}

// DeleteResponse reports how many rows a delete removed.
type DeleteResponse struct {
	RowsAffected int64 `json:"rowsAffected"`
}

func normaliseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
