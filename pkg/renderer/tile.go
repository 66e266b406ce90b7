package renderer

import (
	"image"
	"math/rand"
)

// defaultTileSize is the §4.9 tile edge length in pixels.
const defaultTileSize = 16

// Tile is a rectangular region of the image assigned to a worker as one
// unit of work. Grounded in the teacher's pkg/renderer/progressive.go Tile
// type, trimmed of its multi-pass progressive-refinement bookkeeping since
// this renderer samples each tile to convergence in a single pass.
type Tile struct {
	Index  int
	Bounds image.Rectangle
	Random *rand.Rand
}

// newTile builds a tile with a tile-local RNG seeded from its index, so two
// renders of the same scene with the same tile size reproduce identical
// per-tile sample sequences regardless of which worker happens to claim it.
func newTile(index int, bounds image.Rectangle) *Tile {
	return &Tile{
		Index:  index,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(int64(index) + 42)),
	}
}

// NewTileGrid partitions a width x height image into row-major tileSize x
// tileSize tiles (the final row/column may be smaller), per §4.9.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	index := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, newTile(index, image.Rect(x0, y0, x1, y1)))
			index++
		}
	}
	return tiles
}
