package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtledit/rtl-decimal/internal/config"
	"github.com/rtledit/rtl-decimal/internal/domain"
	"github.com/rtledit/rtl-decimal/internal/field"
	"github.com/rtledit/rtl-decimal/internal/logging"
	"github.com/rtledit/rtl-decimal/internal/output"
	"github.com/rtledit/rtl-decimal/internal/screen"
	"github.com/rtledit/rtl-decimal/internal/terminal"
)

type rootOptions struct {
	configPath    string
	decimalPoints int
	separator     string
	output        string
	log           logging.Config
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{log: logging.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "rtldemo",
		Short: "Right-to-left decimal input demo",
		Long: "rtldemo shows a form of numeric fields that fill from the right and keep a\n" +
			"fixed number of decimal places. Enter moves to the next field; enter on the\n" +
			"last field submits. When stdin is not a terminal the raw key bytes are read\n" +
			"from it, e.g. printf '750\\r1\\r2\\r' | rtldemo",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd, opts, in, out, errOut)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML form description (default: weight, width and height)")
	flags.IntVarP(&opts.decimalPoints, "decimal-points", "d", field.DefaultDecimalPoints, "decimal places for every field, overriding the form")
	flags.StringVar(&opts.separator, "separator", "", "decimal separator shown to the user, overriding the form")
	flags.StringVarP(&opts.output, "output", "o", "screen", "final report format: screen, "+strings.Join(output.AvailableFormatterNames(), ", "))
	opts.log.RegisterFlags(flags)

	cmd.AddCommand(newTypeCmd(opts, out, errOut))
	return cmd
}

// loadForm reads the form description and applies command line overrides.
func loadForm(cmd *cobra.Command, opts *rootOptions) (*domain.Form, error) {
	parser := config.NewInputParser()

	form := domain.DefaultForm()
	if opts.configPath != "" {
		loaded, err := parser.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		form = loaded
	}

	if cmd.Flags().Changed("decimal-points") {
		for i := range form.Fields {
			n := opts.decimalPoints
			form.Fields[i].DecimalPoints = &n
		}
	}
	if cmd.Flags().Changed("separator") {
		form.Separator = opts.separator
	}

	if err := parser.ValidateConfiguration(form); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return form, nil
}

func newLogger(opts *rootOptions, errOut io.Writer) (*slog.Logger, error) {
	return logging.New(logConfig(opts, errOut), errOut)
}

// logConfig enables color when logs end up on a terminal.
func logConfig(opts *rootOptions, errOut io.Writer) logging.Config {
	cfg := opts.log
	cfg.Color = isTerminal(errOut)
	return cfg
}

func runForm(cmd *cobra.Command, opts *rootOptions, in io.Reader, out, errOut io.Writer) error {
	logger, err := newLogger(opts, errOut)
	if err != nil {
		return err
	}
	spec, err := loadForm(cmd, opts)
	if err != nil {
		logger.Error("cannot load form", "error", err)
		return err
	}

	if opts.output != "" && opts.output != "screen" {
		if _, err := output.GetFormatterByName(opts.output); err != nil {
			return err
		}
	}

	interactive := isTerminal(in) && isTerminal(out)

	renderer := terminal.Renderer{Styled: interactive, Width: terminal.DefaultWidth}
	if f, ok := out.(*os.File); ok && interactive {
		renderer.Width = terminal.Width(f, terminal.DefaultWidth)
	}

	// The form owns the screen while it runs, so its logs wait until the
	// terminal is back to normal.
	var held bytes.Buffer
	sessionLogger := logger
	if interactive {
		if sessionLogger, err = logging.New(logConfig(opts, errOut), &held); err != nil {
			return err
		}
	}

	fl := logging.FieldLogger(sessionLogger)
	sess := terminal.NewSession(out, renderer, fl)
	form, err := screen.New(spec, screen.WithNotifier(sess), screen.WithLogger(fl))
	if err != nil {
		return err
	}

	runErr := sess.Run(form, in)
	if _, err := held.WriteTo(errOut); err != nil {
		logger.Warn("failed to write held logs", "error", err)
	}
	if runErr != nil {
		return runErr
	}
	return report(out, form, opts.output, renderer.Width)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && terminal.IsInteractive(f)
}

// report prints the final state of form, either as the plain screen or
// through one of the output formatters.
func report(out io.Writer, form *screen.Form, format string, width int) error {
	if format == "" || format == "screen" {
		return terminal.Renderer{Width: width}.Draw(out, form, "")
	}
	f, err := output.GetFormatterByName(format)
	if err != nil {
		return err
	}
	return output.WriteFormatted(out, f, form.Snapshot())
}
