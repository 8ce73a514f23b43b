package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
	"github.com/custodia-labs/flattree/internal/logger"
)

// Ensure SampleService implements the interface.
var _ driving.SampleService = (*SampleService)(nil)

const (
	// DefaultSampleEntity is the entity generated samples are stored under.
	DefaultSampleEntity = "SampleEntity"

	// sampleRoots is the number of ROOTn records in every sample.
	sampleRoots = 5

	// seedStream is the second PCG word; the seed picks the first.
	seedStream = 0x9e3779b97f4a7c15
)

// SampleHierarchy describes generated sample records.
func SampleHierarchy() domain.Hierarchy {
	return domain.Hierarchy{
		Name:        "sample",
		EntityName:  DefaultSampleEntity,
		ParentField: "ParentId",
		Key:         domain.SingleKey("Id"),
		Mode:        domain.KeyModeConcat,
	}
}

// SampleService writes generated record sets to a sink.
type SampleService struct {
	sink driven.RecordSink
}

// NewSampleService creates a new sample service.
func NewSampleService(sink driven.RecordSink) *SampleService {
	return &SampleService{sink: sink}
}

// Generate replaces the entity's records with a generated set and
// returns the number of records written.
func (s *SampleService) Generate(ctx context.Context, req driving.GenerateRequest) (int, error) {
	if s.sink == nil {
		return 0, domain.ErrNotImplemented
	}
	entity := strings.TrimSpace(req.Entity)
	if entity == "" {
		entity = DefaultSampleEntity
	}

	records, err := GenerateSample(req.Count, req.Seed)
	if err != nil {
		return 0, err
	}
	if err := s.sink.Replace(ctx, entity, records); err != nil {
		return 0, fmt.Errorf("storing sample for %q: %w", entity, err)
	}

	logger.Info("generated %d record(s) for %s (seed %d)", len(records), entity, req.Seed)
	return len(records), nil
}

// Records returns a generated record set without storing it.
func (s *SampleService) Records(req driving.GenerateRequest) ([]domain.Record, error) {
	return GenerateSample(req.Count, req.Seed)
}

// Hierarchy describes generated records.
func (s *SampleService) Hierarchy() domain.Hierarchy {
	return SampleHierarchy()
}

// GenerateSample builds count records plus five special cases. The same
// count and seed always produce the same records.
//
// The set has five roots, then count-5 nodes whose parents follow a fixed
// pattern: the first hundred hang off a random root, every 50th node
// starts a new branch under a root, every 7th extends a deep chain, and
// the rest attach to a recent predecessor. The special cases add a chain
// below ID1, a self loop, a dangling parent and a record with empty
// parent and alternate keys.
func GenerateSample(count int, seed uint64) ([]domain.Record, error) {
	if count < sampleRoots {
		return nil, fmt.Errorf("%w: sample count must be at least %d, got %d",
			domain.ErrInvalidInput, sampleRoots, count)
	}

	g := &sampleGenerator{rng: rand.New(rand.NewPCG(seed, seedStream))}
	records := make([]domain.Record, 0, count+len(specialCases))

	for i := 1; i <= sampleRoots; i++ {
		records = append(records, domain.NewRecord(domain.RowUnchanged, map[string]any{
			"Id":          "ROOT" + strconv.Itoa(i),
			"ParentId":    "",
			"AlternateId": "ALT" + strconv.Itoa(i),
			"Name":        "Root " + strconv.Itoa(i),
		}))
	}

	for i := 1; i <= count-sampleRoots; i++ {
		state := g.rowState()
		parent := g.parentID(i)
		records = append(records, domain.NewRecord(state, map[string]any{
			"Id":          "ID" + strconv.Itoa(i),
			"ParentId":    parent,
			"AlternateId": "ALT" + strconv.Itoa(i),
			"Name":        "Node " + strconv.Itoa(i),
			"Depth":       nodeDepth(parent),
			"HasChildren": g.rng.IntN(2) == 1,
		}))
	}

	for _, sc := range specialCases {
		records = append(records, domain.NewRecord(sc.state, map[string]any{
			"Id":          sc.id,
			"ParentId":    sc.parent,
			"AlternateId": sc.alt,
			"Name":        "Special Case " + sc.id,
			"Depth":       99,
			"HasChildren": true,
		}))
	}

	return records, nil
}

var specialCases = []struct {
	id, parent, alt string
	state           domain.RowState
}{
	{"SPECIAL1", "ID1", "ALTX1", domain.RowModified},
	{"SPECIAL2", "SPECIAL1", "ALTX2", domain.RowAdded},
	{"SPECIAL3", "SPECIAL3", "ALTX3", domain.RowUnchanged},
	{"SPECIAL4", "NONEXISTENT", "ALTX4", domain.RowUnchanged},
	{"SPECIAL5", "", "", domain.RowModified},
}

type sampleGenerator struct {
	rng *rand.Rand
}

func (g *sampleGenerator) rootID() string {
	return "ROOT" + strconv.Itoa(g.rng.IntN(sampleRoots)+1)
}

func (g *sampleGenerator) parentID(i int) string {
	switch {
	case i <= 100:
		return g.rootID()
	case i%50 == 0:
		return g.rootID()
	case i%7 == 0:
		return "ID" + strconv.Itoa(max(1, i-7))
	default:
		return "ID" + strconv.Itoa(max(1, i-(g.rng.IntN(19)+1)))
	}
}

// rowState draws 75% unchanged, 10% modified, 10% added, 5% deleted.
func (g *sampleGenerator) rowState() domain.RowState {
	n := g.rng.IntN(100)
	switch {
	case n < 75:
		return domain.RowUnchanged
	case n < 85:
		return domain.RowModified
	case n < 95:
		return domain.RowAdded
	default:
		return domain.RowDeleted
	}
}

// nodeDepth is an informational column only; the engine never reads it.
func nodeDepth(parent string) int {
	if strings.HasPrefix(parent, "ROOT") {
		return 1
	}
	if num, ok := strings.CutPrefix(parent, "ID"); ok {
		if n, err := strconv.Atoi(num); err == nil {
			if n%7 == 0 {
				return n%5 + 2
			}
			return 2
		}
	}
	return 1
}
