// Package catalog seeds the vegetable table from gzipped catalogue files
// stored on local disk or in S3.
package catalog

import (
	"context"
	"errors"

	"veggie-market/internal/model"
)

// ErrMalformedLine is returned when a catalogue line is not "name,unitPrice".
var ErrMalformedLine = errors.New("malformed catalogue line")

// Entry is one vegetable listed in a catalogue file.
type Entry struct {
	Name      string
	UnitPrice model.Price
}

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads a gzipped catalogue file and returns its entries in file order.
	Load(ctx context.Context, path string) ([]Entry, error)
}

// Registrar stores vegetables. It is satisfied by service.VegetableService.
// RegisterAll stores every request or none of them.
type Registrar interface {
	Count(ctx context.Context) (int64, error)
	RegisterAll(ctx context.Context, reqs []*model.UpsertVegetableRequest) (int64, error)
}
