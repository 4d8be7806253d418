package subscriptions

import (
	"errors"

	"github.com/killallgit/subarr/internal/models"
)

var (
	// ErrNotFound is returned by the store when no row matches
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by the store when a unique constraint rejects an insert
	ErrDuplicate = errors.New("duplicate record")
)

// CreateRequest is the input of Service.Create. An empty Source means the
// default provider for MediaType.
type CreateRequest struct {
	MediaType    models.MediaType `json:"media_type" binding:"required" example:"tv"`
	SourceID     int64            `json:"source_id" binding:"required" example:"1399"`
	Source       models.Source    `json:"source,omitempty" example:"tmdb"`
	SeasonNumber *int             `json:"season_number,omitempty" example:"1"`
	ProfileID    *uint            `json:"profile_id,omitempty"`
}

// ListFilter narrows ListSubscriptions
type ListFilter struct {
	MediaType models.MediaType
	Status    models.SubscriptionStatus
	Page      int
	Limit     int
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return f
}

func (f ListFilter) offset() int {
	return (f.Page - 1) * f.Limit
}
