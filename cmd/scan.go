// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/naka-gawa/triage-scan/internal/gateway"
	"github.com/naka-gawa/triage-scan/internal/usecase"
	"github.com/spf13/cobra"
)

// scanOptions holds the parsed flags of the scan command.
type scanOptions struct {
	inputPath    string
	inputFormat  string
	outputFormat string
	now          string
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Triages issues read from stdin and outputs a report",
	Long: `Reads a JSON array of issues from stdin (or --input), classifies every issue
and writes the triage report to stdout. Nothing is written when any issue is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		var opts scanOptions
		opts.inputPath, _ = cmd.Flags().GetString("input")
		opts.inputFormat, _ = cmd.Flags().GetString("input-format")
		opts.outputFormat, _ = cmd.Flags().GetString("output-format")
		opts.now, _ = cmd.Flags().GetString("now")

		if err := runScan(context.Background(), opts, os.Stdin, os.Stdout, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runScan reads issues from stdin (or opts.inputPath), triages them and writes the report to stdout.
func runScan(ctx context.Context, opts scanOptions, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	outputFormat, err := gateway.ParseOutputFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	// The scan instant is captured once and shared by every issue.
	now := time.Now().UTC()
	if opts.now != "" {
		now, err = time.Parse(time.RFC3339Nano, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now format, please use RFC 3339: %w", err)
		}
	}

	input := stdin
	if opts.inputPath != "" && opts.inputPath != "-" {
		f, err := os.Open(opts.inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	source, err := newIssueSource(opts.inputFormat, input, logger)
	if err != nil {
		return err
	}

	report, err := usecase.NewTriager(source, logger).Run(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to triage issues: %w", err)
	}
	return gateway.NewReportWriter(stdout, outputFormat).Write(report)
}

// newIssueSource picks the decoder matching the upstream payload shape.
func newIssueSource(format string, r io.Reader, logger *log.Logger) (gateway.IssueSource, error) {
	switch format {
	case "flat", "":
		return gateway.NewJSONSource(r, logger), nil
	case "github":
		return gateway.NewGitHubSource(r, logger), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q (want flat or github)", format)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("input", "i", "-", "Read issues from this file instead of stdin")
	scanCmd.Flags().String("input-format", "flat", "Input payload shape: flat or github")
	scanCmd.Flags().String("output-format", "json", "Report encoding: json or yaml")
	scanCmd.Flags().String("now", "", "Override the scan instant (RFC 3339), for reproducible runs")
}
