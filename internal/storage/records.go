// Package storage is the boundary to the relational store. The rest of the
// application only relies on the generic operations declared here (filtered
// selects, key-list selects, batch inserts, keyed updates, conflict-keyed
// upserts and keyed deletes), never on a query language.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// ProductRecord is the persisted shape of a catalog record.
type ProductRecord struct {
	EAN           string    `json:"ean"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty"`
	DiscountPct   float64   `json:"discount_pct,omitempty"`
	Availability  string    `json:"availability"`
	RatingAvg     float64   `json:"rating_avg,omitempty"`
	RatingCount   int       `json:"rating_count,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductFilter narrows product selects for the shop surface.
type ProductFilter struct {
	Search      string
	MinPrice    float64
	MaxPrice    float64
	MinRating   float64
	InStockOnly bool
	Limit       int
	Offset      int
}

// DealRecord marks a product whose discount met the deal threshold. Deal
// status itself is always recomputed from the discount percentage; the
// record only tracks the deal's lifetime.
type DealRecord struct {
	ID          uuid.UUID  `json:"id"`
	EAN         string     `json:"ean"`
	DiscountPct float64    `json:"discount_pct"`
	Active      bool       `json:"active"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// JobType enumerates the periodic reconciliation jobs.
type JobType string

const (
	JobSearchSync      JobType = "search-sync"
	JobPopularProducts JobType = "popular-products"
	JobPriceUpdate     JobType = "price-update"
	JobDealDetection   JobType = "deal-detection"
	JobRatingUpdate    JobType = "rating-update"
)

// JobStatus is the job lifecycle; completed and failed are terminal.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// SyncJobRecord tracks one idempotent reconciliation run. It is mutated only
// by the running job and immutable once terminal.
type SyncJobRecord struct {
	ID             uuid.UUID  `json:"id"`
	Type           JobType    `json:"type"`
	Status         JobStatus  `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ItemsProcessed int        `json:"items_processed"`
	ItemsFailed    int        `json:"items_failed"`
	Error          string     `json:"error,omitempty"`
}

// ClickRecord is one affiliate click event.
type ClickRecord struct {
	ID        uuid.UUID `json:"id"`
	EAN       string    `json:"ean"`
	ArticleID string    `json:"article_id,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	ClickedAt time.Time `json:"clicked_at"`
}
