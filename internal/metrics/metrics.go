package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_fetched_total",
		Help: "Total number of directory pages successfully fetched",
	})
	BytesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_bytes_fetched_total",
		Help: "Total bytes downloaded",
	})
	TransientRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_transient_retries_total",
		Help: "Fetches that failed retryably and were requeued",
	})
	DirectoriesDiscovered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_directories_discovered_total",
		Help: "Distinct directories scheduled for crawling",
	})
	FilesDiscovered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_files_discovered_total",
		Help: "File links seen in directory listings (pre-dedup)",
	})
)

func init() {
	prometheus.MustRegister(
		PagesFetched,
		BytesFetched,
		TransientRetries,
		DirectoriesDiscovered,
		FilesDiscovered,
	)
}
