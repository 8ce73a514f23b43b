package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
	"github.com/custodia-labs/flattree/internal/logger"
)

// Ensure TreeService implements the interface.
var _ driving.TreeService = (*TreeService)(nil)

// NewMaterializer returns the implementation for a strategy.
func NewMaterializer(strategy domain.Strategy, opts Options) (driving.Materializer, error) {
	switch strategy {
	case domain.StrategyNaive:
		return NewNaiveMaterializer(opts), nil
	case domain.StrategyIndexed:
		return NewIndexedMaterializer(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedStrategy, strategy)
	}
}

// TreeService materializes named hierarchies from a record source.
type TreeService struct {
	hierarchies driven.HierarchyStore
	source      driven.RecordSource
	settings    EngineSettings
}

// NewTreeService creates a new tree service.
func NewTreeService(
	hierarchies driven.HierarchyStore,
	source driven.RecordSource,
	settings EngineSettings,
) *TreeService {
	return &TreeService{
		hierarchies: hierarchies,
		source:      source,
		settings:    settings.withDefaults(),
	}
}

// Build loads the hierarchy's records and materializes them.
func (s *TreeService) Build(ctx context.Context, req driving.BuildRequest) (*domain.Forest, error) {
	h, records, err := s.snapshot(ctx, req.Tree)
	if err != nil {
		return nil, err
	}
	return s.Materialize(ctx, records, h, req.Strategy)
}

// Materialize builds a caller-supplied snapshot. An empty strategy
// selects the configured default.
func (s *TreeService) Materialize(
	ctx context.Context,
	records []domain.Record,
	h domain.Hierarchy,
	strategy domain.Strategy,
) (*domain.Forest, error) {
	if strategy == "" {
		strategy = s.settings.Strategy
	}
	m, err := NewMaterializer(strategy, s.settings.Options)
	if err != nil {
		return nil, err
	}

	logger.Section("Materialize " + h.Name)
	logger.Debug("strategy=%s records=%d parent=%s key=%s mode=%s",
		strategy, len(records), h.ParentField, h.Key, h.KeyMode())

	start := time.Now()
	forest, err := m.Build(ctx, records, h)
	if err != nil {
		return nil, fmt.Errorf("materializing %q: %w", h.Name, err)
	}
	logger.Info("%s: %d rows, %d roots, max depth %d in %s",
		strategy, forest.Stats.Materialized, forest.Stats.Roots, forest.Stats.MaxDepth, time.Since(start))
	return forest, nil
}

// Compare runs both strategies on the same snapshot. Each strategy gets
// one untimed warm-up run before the timed run.
func (s *TreeService) Compare(ctx context.Context, req driving.BuildRequest) (*domain.Comparison, error) {
	h, records, err := s.snapshot(ctx, req.Tree)
	if err != nil {
		return nil, err
	}
	return s.CompareSnapshot(ctx, records, h)
}

// CompareSnapshot is Compare over a caller-supplied snapshot.
func (s *TreeService) CompareSnapshot(
	ctx context.Context,
	records []domain.Record,
	h domain.Hierarchy,
) (*domain.Comparison, error) {
	logger.Section("Compare " + h.Name)

	naiveRun, naiveForest, err := s.timedRun(ctx, NewNaiveMaterializer(s.settings.Options), records, h)
	if err != nil {
		return nil, err
	}
	indexedRun, indexedForest, err := s.timedRun(ctx, NewIndexedMaterializer(s.settings.Options), records, h)
	if err != nil {
		return nil, err
	}

	cmp := &domain.Comparison{
		RunID:       uuid.New().String(),
		Tree:        h.Name,
		Records:     len(records),
		Naive:       naiveRun,
		Indexed:     indexedRun,
		Equivalence: Compare(naiveForest, indexedForest),
	}
	if !cmp.Equivalence.Equal {
		logger.Warn("strategies disagree: %d pair(s) only in naive, %d only in indexed",
			len(cmp.Equivalence.OnlyInA), len(cmp.Equivalence.OnlyInB))
	}
	return cmp, nil
}

// Hierarchies lists the registered hierarchies.
func (s *TreeService) Hierarchies(_ context.Context) ([]domain.Hierarchy, error) {
	if s.hierarchies == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.hierarchies.List()
}

func (s *TreeService) snapshot(ctx context.Context, name string) (domain.Hierarchy, []domain.Record, error) {
	if s.hierarchies == nil || s.source == nil {
		return domain.Hierarchy{}, nil, domain.ErrNotImplemented
	}
	h, err := s.hierarchies.Get(name)
	if err != nil {
		return domain.Hierarchy{}, nil, fmt.Errorf("tree %q: %w", name, err)
	}
	entity := h.EntityName
	if entity == "" {
		entity = h.Name
	}
	records, err := s.source.Load(ctx, entity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Hierarchy{}, nil, fmt.Errorf("records for %q: %w", entity, err)
		}
		return domain.Hierarchy{}, nil, fmt.Errorf("loading records for %q: %w", entity, err)
	}
	return h, records, nil
}

func (s *TreeService) timedRun(
	ctx context.Context,
	m driving.Materializer,
	records []domain.Record,
	h domain.Hierarchy,
) (domain.StrategyRun, *domain.Forest, error) {
	if _, err := m.Build(ctx, records, h); err != nil {
		return domain.StrategyRun{}, nil, fmt.Errorf("%s warm-up: %w", m.Strategy(), err)
	}

	start := time.Now()
	forest, err := m.Build(ctx, records, h)
	elapsed := time.Since(start)
	if err != nil {
		return domain.StrategyRun{}, nil, fmt.Errorf("%s run: %w", m.Strategy(), err)
	}

	logger.Info("%s: %d nodes in %s", m.Strategy(), forest.Stats.Materialized, elapsed)
	return domain.StrategyRun{
		Strategy: m.Strategy(),
		Duration: elapsed,
		Stats:    forest.Stats,
	}, forest, nil
}
