package frontier

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsRoot(t *testing.T) {
	f := New("/")

	assert.False(t, f.IsQuiescent(), "root is pending, crawl is not done")

	dir, ok := f.ClaimNext()
	require.True(t, ok)
	assert.Equal(t, "/", dir)

	// Claimed but not completed: still not quiescent.
	assert.False(t, f.IsQuiescent())

	f.CompleteVisit("/")
	assert.True(t, f.IsQuiescent())
}

func TestClaimNextIsFIFO(t *testing.T) {
	f := New("/")
	f.OfferDirectory("/a/")
	f.OfferDirectory("/b/")

	var order []string
	for {
		dir, ok := f.ClaimNext()
		if !ok {
			break
		}
		order = append(order, dir)
		f.CompleteVisit(dir)
	}
	assert.Equal(t, []string{"/", "/a/", "/b/"}, order)
}

func TestOfferDirectoryDedup(t *testing.T) {
	f := New("/")

	assert.True(t, f.OfferDirectory("/a/"), "first offer schedules")
	assert.False(t, f.OfferDirectory("/a/"), "second offer is ignored")

	// Even after the directory is claimed and completed it stays
	// discovered and cannot come back.
	for {
		dir, ok := f.ClaimNext()
		if !ok {
			break
		}
		f.CompleteVisit(dir)
	}
	assert.False(t, f.OfferDirectory("/a/"))
	assert.False(t, f.OfferDirectory("/"), "the root itself is discovered at creation")
}

func TestReleaseTransientRequeues(t *testing.T) {
	f := New("/")

	dir, ok := f.ClaimNext()
	require.True(t, ok)

	f.ReleaseTransient(dir)
	assert.False(t, f.IsQuiescent(), "released path is pending again")

	again, ok := f.ClaimNext()
	require.True(t, ok)
	assert.Equal(t, dir, again, "the same path comes back for retry")

	f.CompleteVisit(again)
	assert.True(t, f.IsQuiescent())
}

func TestOfferFileKeepsDuplicates(t *testing.T) {
	f := New("/")
	f.OfferFile("/x.txt")
	f.OfferFile("/x.txt")

	assert.Equal(t, []string{"/x.txt", "/x.txt"}, f.Files())
}

func TestConcurrentOfferSchedulesOnce(t *testing.T) {
	f := New("/")

	const goroutines = 50
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- f.OfferDirectory("/contested/")
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one offer may schedule the directory")
}

func TestConcurrentClaimsAreExclusive(t *testing.T) {
	f := New("/")
	const dirs = 200
	for i := 0; i < dirs; i++ {
		f.OfferDirectory(fmt.Sprintf("/d%03d/", i))
	}

	var mu sync.Mutex
	claimed := make(map[string]int)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				dir, ok := f.ClaimNext()
				if !ok {
					return
				}
				mu.Lock()
				claimed[dir]++
				mu.Unlock()
				f.CompleteVisit(dir)
			}
		}()
	}
	wg.Wait()

	require.Len(t, claimed, dirs+1) // the root plus every offered dir
	for dir, n := range claimed {
		assert.Equalf(t, 1, n, "%s claimed %d times", dir, n)
	}
	assert.True(t, f.IsQuiescent())
}

func TestSnapshot(t *testing.T) {
	f := New("/")
	f.OfferDirectory("/a/")
	f.OfferFile("/x.txt")

	dir, ok := f.ClaimNext()
	require.True(t, ok)
	require.Equal(t, "/", dir)

	s := f.Snapshot()
	assert.Equal(t, Stats{Pending: 1, InFlight: 1, Discovered: 2, Files: 1}, s)
}
