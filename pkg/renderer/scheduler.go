package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// RunTiles dispatches tiles to numWorkers goroutines through a single
// shared atomic counter: each worker repeatedly claims the next unclaimed
// tile index and renders it with work, until the counter runs past the end
// of tiles (§4.9 — a single shared counter, no per-worker queues and no
// work-stealing). Grounded in the teacher's pkg/renderer/worker_pool.go
// goroutine-plus-sync.WaitGroup shape, with its channel-based task queue
// replaced by the spec's atomic counter.
func RunTiles(tiles []*Tile, numWorkers int, work func(tile *Tile)) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(tiles) {
		numWorkers = len(tiles)
	}
	if numWorkers <= 0 {
		return
	}

	var next atomic.Uint32
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if int(i) >= len(tiles) {
					return
				}
				work(tiles[i])
			}
		}()
	}

	wg.Wait()
}
