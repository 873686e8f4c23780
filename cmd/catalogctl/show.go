package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/catalog"
	"finitefield.org/catalog-web/internal/directory"
	"finitefield.org/catalog-web/internal/format"
)

func showCmd(root *rootOptions) *cobra.Command {
	var (
		filter string
		region string
		locale string
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "show <catalog>",
		Short: "Print the entries a catalog page displays for a filter value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, ok := directory.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown catalog %q (known: %s)", args[0], strings.Join(directory.Names(), ", "))
			}
			bundle, err := root.bundle(locale)
			if err != nil {
				return err
			}
			t := bundle.Translator(locale)

			tax := page.Catalog.Taxonomy()
			sel := catalog.ResolveSelection(filter, tax)
			first, _, _ := strings.Cut(strings.TrimSpace(filter), ",")
			if _, known := tax.Parse(first); sel.FromQuery && !known {
				root.logger.Warn("unknown filter value, using default",
					zap.String("value", filter),
					zap.String("default", string(sel.Active)),
				)
			}
			opts := catalog.FilterOptions{
				HomeRegion:     page.HomeRegion,
				ExceptLabelKey: page.ExceptLabelKey,
				Translate:      t,
				FormatList:     format.Lister(locale),
			}
			if page.HomeRegion != "" {
				opts.Region = string(sel.Active)
				if region != "" {
					opts.Region = region
				}
			}
			if seed != 0 {
				opts.Shuffler = rand.New(rand.NewPCG(seed, seed))
			}

			out := cmd.OutOrStdout()
			active := string(sel.Active)
			if sel.IsNone() {
				active = "(none)"
			}
			fmt.Fprintf(out, "%s: %s\n", t(page.TitleKey), active)
			fmt.Fprintf(out, "url: %s\n", page.Synchronizer(locale).Path(sel.Active))

			entries := catalog.Filter(page.Catalog, sel.Active, opts)
			switch {
			case sel.IsNone() && page.PromptKey != "":
				fmt.Fprintln(out, t(page.PromptKey))
				return nil
			case len(entries) == 0:
				fmt.Fprintln(out, t(page.EmptyKey))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "- %s <%s>\n", e.Title, e.Link)
				if e.Caveat != "" {
					fmt.Fprintf(out, "    %s\n", e.Caveat)
				}
				for _, l := range e.Links {
					fmt.Fprintf(out, "    %s: %s\n", l.Label, l.URL)
				}
				if wallets := directory.RollupWallets(e.Key); len(wallets) > 0 {
					fmt.Fprintf(out, "    wallets: %s\n", format.List(wallets, locale))
				}
				if purposes := directory.RollupPurposes(e.Key); len(purposes) > 0 {
					fmt.Fprintf(out, "    purposes: %s\n", strings.Join(purposes, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "filter value as it would appear in the URL")
	cmd.Flags().StringVar(&region, "region", "", "region used for exception caveats (defaults to the filter value)")
	cmd.Flags().StringVar(&locale, "locale", "en", "display locale")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed for shuffled catalogs (0 keeps source order)")
	return cmd
}
