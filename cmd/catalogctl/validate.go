package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"finitefield.org/catalog-web/internal/directory"
)

func validateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check catalog data and that every referenced translation key exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := directory.Validate(); err != nil {
				return err
			}
			bundle, err := root.bundle(root.defaultLocale)
			if err != nil {
				return err
			}
			var missing []string
			for _, key := range translationKeys() {
				if bundle.T(root.defaultLocale, key) == key {
					missing = append(missing, key)
				}
			}
			if len(missing) > 0 {
				for _, key := range missing {
					fmt.Fprintf(cmd.ErrOrStderr(), "missing translation: %s\n", key)
				}
				return errors.New("validate: translations incomplete")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d catalogs\n", len(directory.Pages()))
			return nil
		},
	}
}

// translationKeys lists every key the catalog pages look up, sorted.
func translationKeys() []string {
	set := map[string]struct{}{}
	add := func(keys ...string) {
		for _, k := range keys {
			if k != "" {
				set[k] = struct{}{}
			}
		}
	}
	for _, p := range directory.Pages() {
		add(p.TitleKey, p.DescriptionKey, p.PromptKey, p.EmptyKey, p.ExceptLabelKey)
		for _, info := range p.Categories {
			add(info.LabelKey, info.BenefitsTitleKey, info.BenefitsDescriptionKey)
			for _, b := range info.Benefits {
				add(b.TitleKey, b.DescriptionKey)
			}
		}
		for _, e := range p.Catalog.Entries() {
			add(e.Description, e.AltKey)
			for _, l := range e.Links {
				if l.URL != "" {
					add(l.LabelKey)
				}
			}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
