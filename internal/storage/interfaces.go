package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductStore persists catalog records.
type ProductStore interface {
	// List selects products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter) ([]ProductRecord, error)
	// ByEANs selects the records whose EAN is in the given list with a
	// single round trip.
	ByEANs(ctx context.Context, eans []string) ([]ProductRecord, error)
	// InsertBatch inserts all records in one batch call.
	InsertBatch(ctx context.Context, records []ProductRecord) error
	// UpsertBatch updates-or-inserts all records keyed on EAN. The original
	// creation timestamp is never overwritten.
	UpsertBatch(ctx context.Context, records []ProductRecord) error
	// Update overwrites a single record by EAN.
	Update(ctx context.Context, record ProductRecord) error
	// Delete removes a single record by EAN.
	Delete(ctx context.Context, ean string) error
}

// DealStore persists deal lifetimes.
type DealStore interface {
	ActiveDeals(ctx context.Context) ([]DealRecord, error)
	InsertBatch(ctx context.Context, deals []DealRecord) error
	// DeactivateExcept ends every active deal whose EAN is not in keep,
	// stamping endedAt. An empty keep list deactivates all active deals.
	DeactivateExcept(ctx context.Context, keep []string, endedAt time.Time) (int, error)
}

// JobStore persists sync job records.
type JobStore interface {
	Create(ctx context.Context, job SyncJobRecord) error
	Update(ctx context.Context, job SyncJobRecord) error
	ByID(ctx context.Context, id uuid.UUID) (*SyncJobRecord, error)
	Recent(ctx context.Context, limit int) ([]SyncJobRecord, error)
}

// ClickStore persists affiliate click events.
type ClickStore interface {
	Insert(ctx context.Context, click ClickRecord) error
}
