package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/observability"
)

type rootOptions struct {
	localesDir    string
	defaultLocale string
	logLevel      string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and validate the site catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zapcore.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			enc := zapcore.NewConsoleEncoder(observability.EncoderConfig())
			opts.logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(cmd.ErrOrStderr()), level))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.localesDir, "locales-dir", "locales", "directory holding <lang>.json translation files")
	root.PersistentFlags().StringVar(&opts.defaultLocale, "default-locale", "en", "fallback locale")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(listCmd(), showCmd(opts), validateCmd(opts), crumbsCmd(opts))
	return root
}

// bundle loads translations for locale. Without a readable locales directory
// keys are printed untranslated.
func (o *rootOptions) bundle(locale string) (*i18n.Bundle, error) {
	b, err := i18n.Load(o.localesDir, o.defaultLocale, []string{o.defaultLocale, locale})
	if err != nil {
		return nil, fmt.Errorf("load locales from %s: %w", o.localesDir, err)
	}
	o.logger.Debug("locales loaded", zap.String("dir", o.localesDir), zap.Strings("supported", b.Supported()))
	return b, nil
}
