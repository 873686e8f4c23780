package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finitefield.org/catalog-web/internal/nav"
)

func crumbsCmd(root *rootOptions) *cobra.Command {
	var (
		locale     string
		current    string
		startDepth int
	)
	cmd := &cobra.Command{
		Use:   "crumbs <slug>",
		Short: "Print the breadcrumb trail for a page slug such as /en/eth2/proof-of-stake/",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := root.bundle(locale)
			if err != nil {
				return err
			}
			if current == "" {
				current = nav.StripLocale(args[0], locale)
			}
			out := cmd.OutOrStdout()
			for _, c := range nav.BuildCrumbs(args[0], locale, current, startDepth, bundle.Translator(locale)) {
				marker := " "
				if c.Current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, c.Label, c.Href)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "en", "locale prefix of the slug")
	cmd.Flags().StringVar(&current, "current", "", "locale-stripped path being viewed (defaults to the slug)")
	cmd.Flags().IntVar(&startDepth, "start-depth", 0, "number of leading crumbs to drop")
	return cmd
}
