// Package frontier holds the shared crawl state: which directories are
// waiting for a fetch, which are being fetched right now, which have
// ever been scheduled, and the file paths found so far. One mutex
// guards all four collections so every operation is atomic relative to
// the others; no directory can be claimed by two workers at once and
// no directory can be scheduled twice.
package frontier

import "sync"

type Frontier struct {
	mu         sync.Mutex
	pending    []string            // FIFO of directories awaiting a fetch
	inFlight   map[string]struct{} // claimed by some worker
	discovered map[string]struct{} // ever scheduled, never shrinks
	files      []string            // raw file paths, dedup happens downstream
}

// Stats is a point-in-time snapshot used for progress logging.
type Stats struct {
	Pending    int
	InFlight   int
	Discovered int
	Files      int
}

// New returns a Frontier seeded with the root directory already
// discovered and pending.
func New(root string) *Frontier {
	f := &Frontier{
		inFlight:   make(map[string]struct{}),
		discovered: make(map[string]struct{}),
	}
	f.discovered[root] = struct{}{}
	f.pending = append(f.pending, root)
	return f
}

// ClaimNext pops the oldest pending directory and marks it in flight.
// It reports false when nothing is pending.
func (f *Frontier) ClaimNext() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return "", false
	}
	p := f.pending[0]
	f.pending[0] = "" // release the slot's reference for the GC
	f.pending = f.pending[1:]
	f.inFlight[p] = struct{}{}
	return p, true
}

// ReleaseTransient puts a directory whose fetch failed retryably back
// at the tail of the pending queue. It stays discovered, so it cannot
// be scheduled a second time through OfferDirectory.
func (f *Frontier) ReleaseTransient(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, path)
	f.pending = append(f.pending, path)
}

// CompleteVisit drops a fully processed directory from the in-flight set.
func (f *Frontier) CompleteVisit(path string) {
	f.mu.Lock()
	delete(f.inFlight, path)
	f.mu.Unlock()
}

// OfferDirectory schedules a newly seen directory and reports whether
// it was new. Marking discovery here, under the same lock as ClaimNext,
// means two workers whose pages both link to the directory cannot both
// enqueue it.
func (f *Frontier) OfferDirectory(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.discovered[path]; ok {
		return false
	}
	f.discovered[path] = struct{}{}
	f.pending = append(f.pending, path)
	return true
}

// OfferFile records a file path. Duplicates are kept; the same file can
// legitimately be linked from two directories and the report layer
// dedups after the crawl.
func (f *Frontier) OfferFile(path string) {
	f.mu.Lock()
	f.files = append(f.files, path)
	f.mu.Unlock()
}

// IsQuiescent reports whether nothing is pending or in flight, i.e. the
// crawl can never produce more work.
func (f *Frontier) IsQuiescent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending) == 0 && len(f.inFlight) == 0
}

// Files returns a copy of the accumulated file paths.
func (f *Frontier) Files() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.files))
	copy(out, f.files)
	return out
}

func (f *Frontier) Snapshot() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Pending:    len(f.pending),
		InFlight:   len(f.inFlight),
		Discovered: len(f.discovered),
		Files:      len(f.files),
	}
}
