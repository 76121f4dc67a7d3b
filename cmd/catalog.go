package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"guut.dev/pkg/guut/internal/domain"
	"guut.dev/pkg/guut/internal/domain/mutagens"
)

var catalogOperators []string

// catalogCmd represents the catalog command.
var catalogCmd = newCatalogCmd()

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Generate the mutant catalog of the module",
		Long: `Apply every mutation operator to the non-test Go files of the module and
write the resulting mutants to the catalog file.

Operators are selected by name (arithmetic/add_sub) or family (comparison).
Families: ` + strings.Join(operatorFamilies(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := modulePath()
			if err != nil {
				return err
			}

			return workflow.Catalog(cmd.Context(), domain.CatalogArgs{
				Root:      root,
				Catalog:   catalogPath(),
				Operators: catalogOperators,
				Threads:   viper.GetInt(catalogThreadsKey),
			})
		},
	}

	cmd.Flags().StringSliceVar(&catalogOperators, operatorFlagName, nil, "operator or family to apply (can be repeated, default: all)")
	cmd.Flags().Int(threadsFlagName, viper.GetInt(catalogThreadsKey), "number of files mutated in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(threadsFlagName), catalogThreadsKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// operatorFamilies lists the distinct family prefixes of all operators.
func operatorFamilies() []string {
	seen := make(map[string]struct{})

	for _, op := range mutagens.All() {
		family, _, _ := strings.Cut(op.Name(), "/")
		seen[family] = struct{}{}
	}

	families := make([]string, 0, len(seen))
	for family := range seen {
		families = append(families, family)
	}

	sort.Strings(families)

	return families
}
