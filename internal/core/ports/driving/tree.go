package driving

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// BuildRequest selects a named hierarchy and the strategy to build it with.
type BuildRequest struct {
	// Tree is the registered hierarchy name.
	Tree string
	// Strategy overrides the configured default when set.
	Strategy domain.Strategy
}

// TreeService materializes named hierarchies from the configured record source.
type TreeService interface {
	// Build loads the hierarchy's records and materializes them.
	Build(ctx context.Context, req BuildRequest) (*domain.Forest, error)

	// Materialize builds a caller-supplied snapshot.
	Materialize(ctx context.Context, records []domain.Record, h domain.Hierarchy, strategy domain.Strategy) (*domain.Forest, error)

	// Compare runs both strategies on the same snapshot, timing each
	// and diffing their outputs.
	Compare(ctx context.Context, req BuildRequest) (*domain.Comparison, error)

	// CompareSnapshot is Compare over a caller-supplied snapshot.
	CompareSnapshot(ctx context.Context, records []domain.Record, h domain.Hierarchy) (*domain.Comparison, error)

	// Hierarchies lists the registered hierarchies.
	Hierarchies(ctx context.Context) ([]domain.Hierarchy, error)
}
