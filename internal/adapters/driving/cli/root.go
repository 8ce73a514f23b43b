package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/flattree/internal/core/ports/driven"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
	"github.com/custodia-labs/flattree/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=1.2.3".
var version = "dev"

// Persistent flags.
var (
	configDir string
	dataDir   string
	verbose   bool
	logJSON   bool
)

// Services wired by the composition root. Commands check for nil and
// report the service as not configured.
var (
	treeService    driving.TreeService
	sampleService  driving.SampleService
	recordStore    driven.RecordStore
	hierarchyStore driven.HierarchyStore
)

// Services bundles the dependencies the commands run against.
type Services struct {
	Tree        driving.TreeService
	Sample      driving.SampleService
	Records     driven.RecordStore
	Hierarchies driven.HierarchyStore
	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Paths are the directories resolved from persistent flags.
// Empty values select the defaults under ~/.flattree.
type Paths struct {
	ConfigDir string
	DataDir   string
}

// Wiring builds services once flags are parsed.
type Wiring func(paths Paths) (*Services, error)

var (
	wiring   Wiring
	closeFns []func() error
)

var rootCmd = &cobra.Command{
	Use:   "flattree",
	Short: "Rebuild trees from flat parent-key records",
	Long: `flattree materializes flat records that reference their parent by key
into a forest of tree rows, each carrying its full path of ancestor keys.

Records come from a local SQLite store, snapshot files or generated sample
data. Trees are described in ~/.flattree/config.toml under [tree.<name>].`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.flattree)")
	flags.StringVar(&dataDir, "data-dir", "", "record database directory (default ~/.flattree/data)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log materialization details to stderr")
	flags.BoolVar(&logJSON, "log-json", false, "write verbose logs as JSON lines")
}

// Execute runs the root command with services built by w. Wired
// resources are closed whether or not the command succeeds.
func Execute(ctx context.Context, w Wiring) error {
	wiring = w
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, teardown())
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose)
	logger.SetJSON(logJSON)

	if wiring == nil || !needsServices(cmd) {
		return nil
	}
	svc, err := wiring(Paths{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return err
	}
	useServices(svc)
	return nil
}

func teardown() error {
	var errs []error
	for _, fn := range closeFns {
		errs = append(errs, fn())
	}
	closeFns = nil
	return errors.Join(errs...)
}

// useServices installs svc for the commands to use.
func useServices(svc *Services) {
	treeService = svc.Tree
	sampleService = svc.Sample
	recordStore = svc.Records
	hierarchyStore = svc.Hierarchies
	if svc.Close != nil {
		closeFns = append(closeFns, svc.Close)
	}
}

// needsServices reports whether a command touches storage.
func needsServices(cmd *cobra.Command) bool {
	return cmd != versionCmd
}
