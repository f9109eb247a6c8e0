package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/slashdevops/systemid"
	"github.com/slashdevops/systemid/internal/version"
	"github.com/spf13/cobra"
)

const applicationName = "systemid"

// errMismatch is returned when --validate does not match this machine.
var errMismatch = errors.New("machine identity does not match")

type options struct {
	exclude     []string
	validate    string
	jsonOutput  bool
	diagnostics bool
	highOnly    bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, systemid.ErrUnavailable) && !errors.Is(err, errMismatch) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   applicationName,
		Short: "Resolve a best-effort identifier for this machine",
		Long: `Resolve a best-effort identifier for this machine.

The identifier comes from the first platform strategy that succeeds and is
printed as hex followed by its confidence (high or low).`,
		Example: `  systemid                         Print the identifier and its confidence
  systemid --high-only             Only accept install-lifetime-stable sources
  systemid --json --diagnostics    JSON output with per-strategy outcomes
  systemid --exclude linux-boot-id Skip a strategy
  systemid --validate <hex>        Check a stored identifier against this machine
  systemid list                    Show the strategies in priority order`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.highOnly, "high-only", false, "Only use high-confidence strategies")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Strategies to skip (see 'systemid list')")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log strategy attempts to stderr")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output result as JSON")
	root.Flags().BoolVar(&opts.diagnostics, "diagnostics", false, "Show per-strategy outcomes")
	root.Flags().StringVar(&opts.validate, "validate", "", "Validate a hex identifier against this machine")

	root.AddCommand(newListCmd(opts), newVersionCmd())

	return root
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the strategies for this platform in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := buildResolver(cmd, opts)
			if err != nil {
				return err
			}
			chain := resolver.Chain()

			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), chain)
			}

			if len(chain) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no strategies available")

				return nil
			}

			for i, info := range chain {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n", i+1, info.Name, info.Confidence)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if long {
				fmt.Fprintln(cmd.OutOrStdout(), version.Long(applicationName))

				return
			}

			fmt.Fprintln(cmd.OutOrStdout(), version.Short(applicationName))
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "Show detailed version information")

	return cmd
}

// buildResolver applies the command-line options to a new resolver.
func buildResolver(cmd *cobra.Command, opts *options) (*systemid.Resolver, error) {
	known := knownStrategies()
	for _, name := range opts.exclude {
		if !slices.Contains(known, strings.TrimSpace(name)) {
			return nil, fmt.Errorf("unknown strategy %q, available: %s", name, strings.Join(known, ", "))
		}
	}

	resolver := systemid.New()

	if opts.verbose {
		resolver.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if opts.highOnly {
		resolver.WithMinConfidence(systemid.ConfidenceHigh)
	}

	for _, name := range opts.exclude {
		resolver.WithoutStrategies(systemid.StrategyName(strings.TrimSpace(name)))
	}

	return resolver, nil
}

func runResolve(cmd *cobra.Command, opts *options) error {
	resolver, err := buildResolver(cmd, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	id, err := resolver.Resolve()
	if err != nil {
		if opts.jsonOutput {
			output := map[string]any{"error": err.Error()}
			if opts.diagnostics {
				output["diagnostics"] = formatDiagnostics(resolver)
			}
			_ = printJSON(out, output)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			if opts.diagnostics {
				printDiagnostics(cmd.ErrOrStderr(), resolver)
			}
		}

		return err
	}

	if opts.validate != "" {
		return handleValidate(cmd, id, opts)
	}

	if opts.jsonOutput {
		output := map[string]any{
			"id":         id.String(),
			"confidence": id.Confidence(),
			"strategy":   resolver.Diagnostics().Selected,
			"length":     id.Len(),
		}
		if opts.diagnostics {
			output["diagnostics"] = formatDiagnostics(resolver)
		}

		return printJSON(out, output)
	}

	fmt.Fprintf(out, "%s %s\n", id, id.Confidence())

	if opts.diagnostics {
		printDiagnostics(cmd.ErrOrStderr(), resolver)
	}

	return nil
}

func handleValidate(cmd *cobra.Command, id systemid.ID, opts *options) error {
	valid := strings.EqualFold(strings.TrimSpace(opts.validate), id.String())

	if opts.jsonOutput {
		if err := printJSON(cmd.OutOrStdout(), map[string]any{
			"valid":      valid,
			"expectedID": opts.validate,
		}); err != nil {
			return err
		}
	} else if valid {
		fmt.Fprintln(cmd.OutOrStdout(), "valid: machine identity matches")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "invalid: machine identity does not match")
	}

	if !valid {
		return errMismatch
	}

	return nil
}

func printDiagnostics(w io.Writer, resolver *systemid.Resolver) {
	diag := resolver.Diagnostics()
	if diag == nil {
		fmt.Fprintln(w, "no diagnostic information available")

		return
	}

	fmt.Fprintln(w, "\nDiagnostics:")
	if diag.Selected != "" {
		fmt.Fprintf(w, "  Selected: %s\n", diag.Selected)
	}
	if len(diag.Errors) > 0 {
		fmt.Fprintln(w, "  Errors:")
		for _, name := range diag.Attempted {
			if err, ok := diag.Errors[name]; ok {
				fmt.Fprintf(w, "    %s: %v\n", name, err)
			}
		}
	}
}

func formatDiagnostics(resolver *systemid.Resolver) map[string]any {
	diag := resolver.Diagnostics()
	if diag == nil {
		return nil
	}

	result := map[string]any{
		"attempted": diag.Attempted,
	}
	if diag.Selected != "" {
		result["selected"] = diag.Selected
	}

	if len(diag.Errors) > 0 {
		errs := make(map[string]string, len(diag.Errors))
		for name, err := range diag.Errors {
			errs[string(name)] = err.Error()
		}
		result["errors"] = errs
	}

	return result
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// knownStrategies returns the strategy names compiled in for this platform.
func knownStrategies() []string {
	var names []string
	for _, info := range systemid.New().Chain() {
		names = append(names, string(info.Name))
	}
	slices.Sort(names)

	return names
}
