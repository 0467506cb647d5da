package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductPublished announces that product metadata was uploaded to the
// content store under CID and is ready to be indexed.
type ProductPublished struct {
	EventID     uuid.UUID
	BusinessID  string
	CID         string
	PublishedAt time.Time
}
