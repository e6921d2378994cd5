package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtledit/rtl-decimal/internal/config"
	"github.com/rtledit/rtl-decimal/internal/domain"
	"github.com/rtledit/rtl-decimal/internal/logging"
	"github.com/rtledit/rtl-decimal/internal/screen"
	"github.com/rtledit/rtl-decimal/internal/terminal"
	fixed "github.com/rtledit/rtl-decimal/pkg/decimal"
)

// newTypeCmd prints the display of a single field after each typed key.
func newTypeCmd(opts *rootOptions, out, errOut io.Writer) *cobra.Command {
	var initial string

	cmd := &cobra.Command{
		Use:   "type KEYS...",
		Short: "Type keys into one field and print the display after each key",
		Example: "  rtldemo type 750\n" +
			"  rtldemo type -d 2 --initial 4.5 9",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts, errOut)
			if err != nil {
				return err
			}

			spec := &domain.Form{
				Separator: opts.separator,
				Fields:    []domain.FieldSpec{{Name: "value", Label: "Value"}},
			}
			if cmd.Flags().Changed("decimal-points") {
				n := opts.decimalPoints
				spec.Fields[0].DecimalPoints = &n
			}
			if initial != "" {
				v, err := fixed.ParseDecimal(initial, spec.SeparatorRune())
				if err != nil {
					return fmt.Errorf("invalid --initial: %w", err)
				}
				spec.Fields[0].InitialValue = v
			}
			if err := config.NewInputParser().ValidateConfiguration(spec); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			fl := logging.FieldLogger(logger)
			sess := terminal.NewSession(out, terminal.Renderer{}, fl)
			sess.Echo = true
			form, err := screen.New(spec, screen.WithLogger(fl))
			if err != nil {
				return err
			}

			fmt.Fprintln(out, form.Focused().Text())
			return sess.Run(form, strings.NewReader(strings.Join(args, "")))
		},
	}
	cmd.Flags().StringVar(&initial, "initial", "", "initial value")
	return cmd
}
