package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

var (
	treeEntity      string
	treeParentField string
	treeParentAlt   string
	treeKeyFields   string
	treeKeyMode     string
)

var treesCmd = &cobra.Command{
	Use:   "trees",
	Short: "Manage tree definitions",
}

var treesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured trees",
	Args:  cobra.NoArgs,
	RunE:  runTreesList,
}

var treesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add or replace a tree definition",
	Long: `Stores a tree definition in the config file under [tree.<name>].

A composite key is given as two comma-separated fields. In concat mode the
two values are joined into one text key; in tuple mode they are compared as
a pair and --parent-alt-field names the second half of the parent reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runTreesAdd,
}

func init() {
	treesAddCmd.Flags().StringVar(&treeEntity, "entity", "", "record set the tree is built from (default: the tree name)")
	treesAddCmd.Flags().StringVar(&treeParentField, "parent-field", "", "field holding the parent key")
	treesAddCmd.Flags().StringVar(&treeParentAlt, "parent-alt-field", "", "second parent key field (tuple mode)")
	treesAddCmd.Flags().StringVar(&treeKeyFields, "key-fields", "", "key field, or two comma-separated fields")
	treesAddCmd.Flags().StringVar(&treeKeyMode, "key-mode", "concat", "composite key mode: concat or tuple")
	treesCmd.AddCommand(treesListCmd)
	treesCmd.AddCommand(treesAddCmd)
	rootCmd.AddCommand(treesCmd)
}

func runTreesList(cmd *cobra.Command, _ []string) error {
	if treeService == nil {
		return errors.New("tree service not configured")
	}

	trees, err := treeService.Hierarchies(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list trees: %w", err)
	}
	if len(trees) == 0 {
		cmd.Println("No trees configured.")
		return nil
	}

	for _, h := range trees {
		entity := h.EntityName
		if entity == "" {
			entity = h.Name
		}
		cmd.Printf("%s\tentity=%s parent=%s key=%s mode=%s\n",
			h.Name, entity, parentLabel(h), h.Key, h.KeyMode())
	}
	return nil
}

func parentLabel(h domain.Hierarchy) string {
	if h.ParentAltField == "" {
		return h.ParentField
	}
	return h.ParentField + "," + h.ParentAltField
}

func runTreesAdd(cmd *cobra.Command, args []string) error {
	if hierarchyStore == nil {
		return errors.New("tree store not configured")
	}

	keys, err := domain.ParseKeyFields(treeKeyFields)
	if err != nil {
		return err
	}
	h := domain.Hierarchy{
		Name:           args[0],
		EntityName:     treeEntity,
		ParentField:    treeParentField,
		ParentAltField: treeParentAlt,
		Key:            keys,
		Mode:           domain.KeyMode(treeKeyMode),
	}
	if err := hierarchyStore.Save(h); err != nil {
		return fmt.Errorf("failed to save tree: %w", err)
	}

	cmd.Printf("Tree %s saved.\n", h.Name)
	return nil
}
