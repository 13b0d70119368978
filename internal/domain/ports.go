package domain

import (
	"context"
	"errors"
)

var (
	// ErrMissingInput: review text absent or blank.
	ErrMissingInput = errors.New("missing review text")
	// ErrMalformedRequest: request body could not be decoded.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrInternal: unexpected failure inside the scoring pipeline.
	ErrInternal = errors.New("internal error")
	ErrNotFound = errors.New("not found")
)

type Rater interface {
	Rate(text string) (AspectRatings, error)
	Explain(text string) (Analysis, error)
}

type ReviewRepository interface {
	// ListUnrated returns reviews with text but no aspect ratings, id > afterID, ascending.
	ListUnrated(ctx context.Context, afterID int64, limit int) ([]Review, error)
	UpdateAspects(ctx context.Context, id int64, aspectsJSON []byte) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
