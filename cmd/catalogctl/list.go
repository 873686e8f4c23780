package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finitefield.org/catalog-web/internal/directory"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogs with their URL contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tPARAM\tDEFAULT\tORDER\tENTRIES\tCATEGORIES")
			for _, p := range directory.Pages() {
				tax := p.Catalog.Taxonomy()
				def := string(tax.Default())
				if def == "" {
					def = "-"
				}
				fmt.Fprintf(w, "%s\t/%s/\t%s\t%s\t%s\t%d\t%d\n",
					p.Name, strings.Trim(p.Slug, "/"), p.Param, def, p.Catalog.Ordering(), p.Catalog.Len(), tax.Len())
			}
			return w.Flush()
		},
	}
}
