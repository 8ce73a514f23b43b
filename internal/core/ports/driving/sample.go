package driving

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// GenerateRequest configures a sample data set.
type GenerateRequest struct {
	// Entity names the record set to (re)write.
	Entity string
	// Count is the total number of regular records, roots included.
	Count int
	// Seed makes the generated set reproducible.
	Seed uint64
}

// SampleService generates hierarchical sample records.
type SampleService interface {
	// Generate writes a sample record set and returns the number of
	// records written, special cases included.
	Generate(ctx context.Context, req GenerateRequest) (int, error)

	// Records returns a generated record set without storing it.
	Records(req GenerateRequest) ([]domain.Record, error)

	// Hierarchy describes how generated records link to their parents.
	Hierarchy() domain.Hierarchy
}
