package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
)

var (
	buildStrategy string
	buildJSON     bool
	buildPlain    bool
	buildPaths    bool
	buildSample   int
	buildSeed     uint64
)

var buildCmd = &cobra.Command{
	Use:   "build [tree]",
	Short: "Materialize a tree",
	Long: `Loads the records of a configured tree and materializes them into a
forest. Every row is listed with its depth; roots come first in each subtree.

With --sample N the tree is built from N generated sample records instead of
the record store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildStrategy, "strategy", "s", "", "materializer to use: naive or indexed (default from config)")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "output rows as JSON")
	buildCmd.Flags().BoolVar(&buildPlain, "plain", false, "disable colours")
	buildCmd.Flags().BoolVar(&buildPaths, "paths", false, "print one slash-separated path per row")
	buildCmd.Flags().IntVar(&buildSample, "sample", 0, "build from N generated records instead of the store")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", 1, "seed for --sample")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if treeService == nil {
		return errors.New("tree service not configured")
	}

	strategy, err := parseStrategy(buildStrategy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var forest *domain.Forest

	if buildSample > 0 {
		records, h, err := sampleSnapshot(args, buildSample, buildSeed)
		if err != nil {
			return err
		}
		forest, err = treeService.Materialize(ctx, records, h, strategy)
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
	} else {
		if len(args) == 0 {
			return errors.New("a tree name is required unless --sample is set")
		}
		forest, err = treeService.Build(ctx, driving.BuildRequest{Tree: args[0], Strategy: strategy})
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case buildJSON:
		return renderForestJSON(out, forest)
	case buildPaths:
		renderPaths(out, forest)
	default:
		renderTree(out, forest, stylesFor(out, buildPlain))
	}
	return nil
}

func parseStrategy(raw string) (domain.Strategy, error) {
	strategy := domain.Strategy(raw)
	if raw != "" && !strategy.IsValid() {
		return "", fmt.Errorf("%w: %q (want naive or indexed)", domain.ErrUnsupportedStrategy, raw)
	}
	return strategy, nil
}

// sampleSnapshot generates records for --sample runs.
func sampleSnapshot(args []string, count int, seed uint64) ([]domain.Record, domain.Hierarchy, error) {
	if len(args) > 0 {
		return nil, domain.Hierarchy{}, errors.New("--sample cannot be combined with a tree name")
	}
	if sampleService == nil {
		return nil, domain.Hierarchy{}, errors.New("sample service not configured")
	}
	records, err := sampleService.Records(driving.GenerateRequest{Count: count, Seed: seed})
	if err != nil {
		return nil, domain.Hierarchy{}, fmt.Errorf("generating sample: %w", err)
	}
	return records, sampleService.Hierarchy(), nil
}
