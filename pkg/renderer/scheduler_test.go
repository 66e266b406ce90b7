package renderer

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunTilesVisitsEveryTileExactlyOnce(t *testing.T) {
	tiles := NewTileGrid(64, 64, 16)
	visits := make([]int32, len(tiles))
	var mu sync.Mutex

	RunTiles(tiles, 4, func(tile *Tile) {
		mu.Lock()
		visits[tile.Index]++
		mu.Unlock()
	})

	for i, count := range visits {
		if count != 1 {
			t.Errorf("tile %d visited %d times, want 1", i, count)
		}
	}
}

func TestRunTilesDefaultsWorkerCountWhenZero(t *testing.T) {
	tiles := NewTileGrid(32, 32, 16)
	var visited int32
	RunTiles(tiles, 0, func(tile *Tile) {
		atomic.AddInt32(&visited, 1)
	})
	if int(visited) != len(tiles) {
		t.Errorf("visited %d tiles, want %d", visited, len(tiles))
	}
}

func TestRunTilesClampsWorkersAboveTileCount(t *testing.T) {
	tiles := NewTileGrid(16, 16, 16) // one tile
	var visited int32
	RunTiles(tiles, 64, func(tile *Tile) {
		atomic.AddInt32(&visited, 1)
	})
	if visited != 1 {
		t.Errorf("visited = %d, want 1", visited)
	}
}
