package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-registry/internal/domain/league"
	"github.com/riskibarqy/league-registry/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	SummaryText = "text"
	SummaryJSON = "json"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Importer runs one roster import.
type Importer interface {
	Import(ctx context.Context, req usecase.ImportRequest, reporter usecase.ImportReporter) (usecase.ImportSummary, error)
}

// ImporterFactory builds the importer for a run. The returned close func
// releases whatever the importer holds open.
type ImporterFactory func(ctx context.Context, dryRun bool) (Importer, func() error, error)

type importOptions struct {
	league      string
	countryCode string
	tier        int
	dryRun      bool
	summary     string
}

// NewImportCommand builds the importer root command.
func NewImportCommand(factory ImporterFactory, stdout io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = os.Stdout
	}
	var opts importOptions

	cmd := &cobra.Command{
		Use:           "importer <csv_file>",
		Short:         "Import players from a CSV roster into the league registry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			opts.summary = strings.ToLower(strings.TrimSpace(opts.summary))
			switch opts.summary {
			case SummaryText, SummaryJSON:
			default:
				return usageErr(fmt.Errorf("invalid --summary %q: valid values are %s, %s", opts.summary, SummaryText, SummaryJSON))
			}
			if opts.tier < 1 || opts.tier > 10 {
				return usageErr(fmt.Errorf("invalid --tier %d: must be between 1 and 10", opts.tier))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), factory, stdout, args[0], opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr(err)
	})

	cmd.Flags().StringVar(&opts.league, "league", "", "League name (required)")
	cmd.Flags().StringVar(&opts.countryCode, "country-code", "", "ISO 3166-1 alpha-3 country code of the league (required)")
	cmd.Flags().IntVar(&opts.tier, "tier", league.DefaultTier, "League tier, 1 to 10")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run against an in-memory registry and leave the database untouched")
	cmd.Flags().StringVar(&opts.summary, "summary", SummaryText, "Summary format: text or json")

	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("country-code")

	return cmd
}

func runImport(ctx context.Context, factory ImporterFactory, stdout io.Writer, path string, opts importOptions) error {
	importer, closeFn, err := factory(ctx, opts.dryRun)
	if err != nil {
		return errors.Wrap(err, "build importer")
	}
	defer func() {
		if closeFn != nil {
			_ = closeFn()
		}
	}()

	summary, err := importer.Import(ctx, usecase.ImportRequest{
		FilePath:    path,
		LeagueName:  opts.league,
		CountryCode: opts.countryCode,
		Tier:        opts.tier,
	}, NewConsoleReporter(stdout))
	if err != nil {
		return err
	}

	if opts.summary == SummaryJSON {
		payload, err := sonic.Marshal(summary)
		if err != nil {
			return errors.Wrap(err, "encode summary")
		}
		fmt.Fprintln(stdout, string(payload))
	}
	return nil
}

// Execute runs cmd and maps its error to a process exit code. Errors are
// written to stderr.
func Execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	if stderr == nil {
		stderr = os.Stderr
	}
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	code := ExitCode(err)
	if code == ExitUsage && !errors.Is(err, usecase.ErrInvalidInput) {
		fmt.Fprintln(stderr, cmd.UsageString())
	}
	return code
}

// ExitCode returns 2 for bad arguments or input, 1 for any other failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage), errors.Is(err, usecase.ErrInvalidInput):
		return ExitUsage
	case isCobraUsageErr(err):
		return ExitUsage
	default:
		return ExitError
	}
}

var errUsage = errors.New("usage")

func usageErr(err error) error {
	return errors.Mark(err, errUsage)
}

// cobra reports argument count and required flag failures as plain errors.
func isCobraUsageErr(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "required flag(s)") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
