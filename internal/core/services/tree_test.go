package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flattree/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
)

func newTestTreeService(t *testing.T, settings EngineSettings) (*TreeService, *memory.RecordStore) {
	t.Helper()
	records := memory.NewRecordStore()
	require.NoError(t, records.Replace(context.Background(), "Nodes", []domain.Record{
		node("A", ""),
		node("B", "A"),
		node("C", "B"),
	}))
	hierarchies := memory.NewHierarchyStore(
		domain.Hierarchy{Name: "nodes", EntityName: "Nodes", ParentField: "ParentId", Key: domain.SingleKey("Id")},
		domain.Hierarchy{Name: "Nodes", ParentField: "ParentId", Key: domain.SingleKey("Id")},
		domain.Hierarchy{Name: "missing", EntityName: "Ghosts", ParentField: "ParentId", Key: domain.SingleKey("Id")},
	)
	return NewTreeService(hierarchies, records, settings), records
}

func TestNewMaterializer(t *testing.T) {
	m, err := NewMaterializer(domain.StrategyNaive, Options{})
	require.NoError(t, err)
	assert.IsType(t, &NaiveMaterializer{}, m)

	m, err = NewMaterializer(domain.StrategyIndexed, Options{})
	require.NoError(t, err)
	assert.IsType(t, &IndexedMaterializer{}, m)

	_, err = NewMaterializer("quantum", Options{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)
}

func TestNewTreeService_AppliesDefaults(t *testing.T) {
	svc := NewTreeService(nil, nil, EngineSettings{})
	assert.Equal(t, DefaultEngineSettings(), svc.settings)
}

func TestTreeService_Build(t *testing.T) {
	svc, _ := newTestTreeService(t, EngineSettings{})

	for _, strategy := range []domain.Strategy{"", domain.StrategyNaive, domain.StrategyIndexed} {
		forest, err := svc.Build(context.Background(), driving.BuildRequest{Tree: "nodes", Strategy: strategy})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "A/B", "A/B/C"}, paths(forest))
	}
}

func TestTreeService_BuildFallsBackToTreeName(t *testing.T) {
	svc, _ := newTestTreeService(t, EngineSettings{})

	forest, err := svc.Build(context.Background(), driving.BuildRequest{Tree: "Nodes"})
	require.NoError(t, err)
	assert.Len(t, forest.Rows, 3)
}

func TestTreeService_BuildErrors(t *testing.T) {
	svc, _ := newTestTreeService(t, EngineSettings{})

	_, err := svc.Build(context.Background(), driving.BuildRequest{Tree: "unknown"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Build(context.Background(), driving.BuildRequest{Tree: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Build(context.Background(), driving.BuildRequest{Tree: "nodes", Strategy: "quantum"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedStrategy)

	_, err = NewTreeService(nil, nil, EngineSettings{}).Build(context.Background(), driving.BuildRequest{Tree: "nodes"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestTreeService_MaterializeUsesConfiguredDepth(t *testing.T) {
	svc := NewTreeService(nil, nil, EngineSettings{
		Strategy: domain.StrategyNaive,
		Options:  Options{MaxDepth: 2},
	})

	_, err := svc.Materialize(context.Background(), chain(3, false), simpleTree, "")
	assert.ErrorIs(t, err, domain.ErrDepthExceeded)

	forest, err := svc.Materialize(context.Background(), chain(2, false), simpleTree, "")
	require.NoError(t, err)
	assert.Equal(t, 2, forest.Stats.MaxDepth)
}

func TestTreeService_Compare(t *testing.T) {
	svc, _ := newTestTreeService(t, EngineSettings{})

	cmp, err := svc.Compare(context.Background(), driving.BuildRequest{Tree: "nodes"})
	require.NoError(t, err)

	assert.NotEmpty(t, cmp.RunID)
	assert.Equal(t, "nodes", cmp.Tree)
	assert.Equal(t, 3, cmp.Records)
	assert.Equal(t, domain.StrategyNaive, cmp.Naive.Strategy)
	assert.Equal(t, domain.StrategyIndexed, cmp.Indexed.Strategy)
	assert.Equal(t, cmp.Naive.Stats, cmp.Indexed.Stats)
	assert.True(t, cmp.Equivalence.Equal)
}

func TestTreeService_CompareSnapshot(t *testing.T) {
	svc := NewTreeService(nil, nil, EngineSettings{})
	records, err := GenerateSample(400, 11)
	require.NoError(t, err)

	first, err := svc.CompareSnapshot(context.Background(), records, SampleHierarchy())
	require.NoError(t, err)
	second, err := svc.CompareSnapshot(context.Background(), records, SampleHierarchy())
	require.NoError(t, err)

	assert.True(t, first.Equivalence.Equal)
	assert.Equal(t, "sample", first.Tree)
	assert.Equal(t, 405, first.Records)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestTreeService_CompareFailure(t *testing.T) {
	svc := NewTreeService(nil, nil, EngineSettings{})

	_, err := svc.CompareSnapshot(context.Background(),
		[]domain.Record{node("A", ""), node("B", "A"), node("A", "B")}, simpleTree)
	assert.ErrorIs(t, err, domain.ErrCyclicReference)
}

func TestTreeService_Hierarchies(t *testing.T) {
	svc, _ := newTestTreeService(t, EngineSettings{})

	hs, err := svc.Hierarchies(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 3)
	assert.Equal(t, "Nodes", hs[0].Name)

	_, err = NewTreeService(nil, nil, EngineSettings{}).Hierarchies(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestComparison_Improvement(t *testing.T) {
	cmp := &domain.Comparison{
		Naive:   domain.StrategyRun{Duration: 200},
		Indexed: domain.StrategyRun{Duration: 50},
	}
	assert.InDelta(t, 75.0, cmp.Improvement(), 0.001)
	assert.Zero(t, (&domain.Comparison{}).Improvement())
}
