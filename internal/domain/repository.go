package domain

import (
	"context"
	"time"
)

// ProductRepository persists fulfillment records. Implementations never create
// products; ingestion happens elsewhere.
type ProductRepository interface {
	FindBySKU(ctx context.Context, sku int64) (*Product, error)
	// ApplySlot atomically overwrites a single slot of the product keyed by
	// sku and returns the record as it is after the write.
	ApplySlot(ctx context.Context, sku int64, slot Slot, value string) (*Product, error)
	// MarkFulfilled transitions a pending, complete product to Fulfilled and
	// stamps at. It reports false when the product was already fulfilled or
	// is still incomplete.
	MarkFulfilled(ctx context.Context, sku int64, at time.Time) (bool, error)
	// MarkPending sets the status of a product ingested without one to
	// Pending. It touches no other field and reports false when the product
	// already carries a status.
	MarkPending(ctx context.Context, sku int64) (bool, error)
}

// GenerationLogRepository stores the generation history.
type GenerationLogRepository interface {
	Append(ctx context.Context, entry *GenerationLog) error
	ListRecent(ctx context.Context, limit int) ([]GenerationLog, error)
}
