package driven

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// RecordSource supplies the flat record snapshot a tree is built from.
// Records are returned in their stored order.
type RecordSource interface {
	// Load returns all records of an entity.
	// Returns domain.ErrNotFound if the entity has no records.
	Load(ctx context.Context, entity string) ([]domain.Record, error)

	// Entities lists the entity names the source holds.
	Entities(ctx context.Context) ([]string, error)
}

// RecordSink stores record snapshots produced by a generator or importer.
type RecordSink interface {
	// Replace stores records for an entity, discarding any previous set.
	Replace(ctx context.Context, entity string, records []domain.Record) error
}

// RecordStore is a source that can also be written.
type RecordStore interface {
	RecordSource
	RecordSink
}
