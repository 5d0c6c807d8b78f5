package crawler

import (
	"time"

	"go.uber.org/zap"
)

type Options struct {
	StartDir     string        // root-relative directory to crawl from, default "/"
	BaseURL      string        // scheme://host of the autoindex site
	Workers      int           // pool size, default 100
	PollInterval time.Duration // idle worker re-check interval
	MetricsAddr  string        // prometheus listen address, empty = off
	Logger       *zap.Logger   // nil = no logging
}

func (o Options) withDefaults() Options {
	if o.StartDir == "" {
		o.StartDir = "/"
	}
	if o.Workers <= 0 {
		o.Workers = 100
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 25 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
