package crawler

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"indexcrawl/internal/fetch"
	"indexcrawl/internal/frontier"
	"indexcrawl/internal/report"
	"indexcrawl/internal/storage"
)

// Run crawls the autoindex tree under opts.StartDir and returns the
// sorted, deduplicated file paths. It returns once every worker has
// independently observed quiescence, or with an error after a fatal
// format violation anywhere in the tree.
func Run(opts Options) ([]string, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	_ = godotenv.Load()

	if opts.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(opts.MetricsAddr, mux); err != nil {
				log.Warn("metrics server", zap.Error(err))
			}
		}()
	}

	f := frontier.New(opts.StartDir)
	fetcher := fetch.New(opts.BaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First fatal error wins; everything else is told to stop.
	var (
		abortOnce sync.Once
		abortErr  error
	)
	abort := func(err error) {
		abortOnce.Do(func() {
			abortErr = err
			cancel()
		})
	}

	start := time.Now()
	log.Info("crawl starting",
		zap.String("startDir", opts.StartDir),
		zap.String("base", opts.BaseURL),
		zap.Int("workers", opts.Workers))

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, f, fetcher, opts.PollInterval, log, abort)
		}(i)
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s := f.Snapshot()
				log.Info("progress",
					zap.Int("pending", s.Pending),
					zap.Int("inFlight", s.InFlight),
					zap.Int("discovered", s.Discovered),
					zap.Int("files", s.Files))
			}
		}
	}()

	wg.Wait()
	cancel()

	if abortErr != nil {
		log.Error("crawl aborted", zap.Error(abortErr))
		return nil, abortErr
	}

	files := report.Assemble(f.Files())
	s := f.Snapshot()
	log.Info("crawl complete",
		zap.Int("directories", s.Discovered),
		zap.Int("files", len(files)),
		zap.Duration("elapsed", time.Since(start)))

	if err := archive(opts.StartDir, files, log); err != nil {
		// Archiving is best-effort; the crawl itself succeeded.
		log.Warn("archive failed", zap.Error(err))
	}
	return files, nil
}

// archive writes the run to MongoDB when MONGODB_URI is set.
func archive(startDir string, files []string, log *zap.Logger) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.New(ctx, uri)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.ArchiveRun(ctx, startDir, files); err != nil {
		return err
	}
	log.Info("archived run", zap.Int("files", len(files)))
	return nil
}
