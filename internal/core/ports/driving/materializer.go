package driving

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// Materializer turns flat records into path-annotated tree rows.
//
// Implementations never modify records. Every active, field-complete,
// resolvable record appears in the result exactly once; deleted records
// never appear. A cancelled context or cyclic input returns an error and
// no rows.
type Materializer interface {
	// Build materializes records according to the hierarchy.
	Build(ctx context.Context, records []domain.Record, h domain.Hierarchy) (*domain.Forest, error)

	// Strategy names the implementation.
	Strategy() domain.Strategy
}
