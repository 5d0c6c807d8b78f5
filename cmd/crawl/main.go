package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexcrawl/internal/crawler"
	"indexcrawl/internal/report"
)

const defaultBase = "https://ftp.gnu.org"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		quiet       bool
		workers     int
		base        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "crawl [startDir]",
		Short: "Recursively list every file under a remote autoindex directory",
		Long: `crawl walks an Apache/nginx-style directory listing site breadth-first
from the given starting directory (default "/"), discovers every
reachable subdirectory, and writes the sorted set of file paths to an
output file derived from the starting directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}
			if !strings.HasPrefix(start, "/") {
				return fmt.Errorf("starting directory %q must begin with /", start)
			}
			// Past argument validation; runtime failures are not usage errors.
			cmd.SilenceUsage = true

			log, err := buildLogger(quiet)
			if err != nil {
				return err
			}
			defer log.Sync()

			files, err := crawler.Run(crawler.Options{
				StartDir:    start,
				BaseURL:     base,
				Workers:     workers,
				MetricsAddr: metricsAddr,
				Logger:      log,
			})
			if err != nil {
				return err
			}

			out := report.OutputName(start)
			if err := report.Write(out, files); err != nil {
				return err
			}
			log.Info("wrote results", zap.String("file", out), zap.Int("count", len(files)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	cmd.Flags().IntVar(&workers, "workers", 100, "number of concurrent fetch workers")
	cmd.Flags().StringVar(&base, "base", defaultBase, "base URL of the autoindex site")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "expose prometheus metrics on this address (empty = off)")
	return cmd
}

func buildLogger(quiet bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return cfg.Build()
}
