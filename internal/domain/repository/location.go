package repository

import (
	"context"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// LocationRepository stores reserved storage slots keyed by code.
type LocationRepository interface {
	ListCodes(ctx context.Context) ([]string, error)
	Get(ctx context.Context, code string) (*model.Location, error)
	// Reserve atomically creates the slot document, failing with
	// ErrLocationConflict when it already exists.
	Reserve(ctx context.Context, code string, fields model.Document) error
	// Annotate atomically merges fields into the slot document. When the
	// document is absent it is created from onCreate merged with fields.
	Annotate(ctx context.Context, code string, fields, onCreate model.Document) error
}
