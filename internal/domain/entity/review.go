package entity

import (
	"time"

	"github.com/google/uuid"
)

// SiteReview is free-text feedback with a 1-5 rating, owned by its author.
// An optional Reply is filled in by whoever responds (typically an admin).
type SiteReview struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Rating    int
	Comment   string
	Reply     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
