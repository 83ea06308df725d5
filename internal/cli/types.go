package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.appointy.com/guild/internal/resolvers/types"
)

func newTypesCommand() *cobra.Command {
	var withFields bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the registered GraphQL object types in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for name, obj := range types.All().Entries() {
				line := name + "\t" + obj.Description
				if withFields {
					line += "\t" + strings.Join(obj.FieldNames(), ",")
				}
				fmt.Fprintln(w, line)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&withFields, "fields", false, "Also print the field names of each type")
	return cmd
}
