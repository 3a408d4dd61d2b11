package encounter

import (
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// Layout glyphs.
const (
	GlyphGrass = '"'
	GlyphPath  = '.'
	GlyphWall  = '#'
)

// ParseGrass returns the grass tiles of a zone layout. Row index is Y,
// column index is X.
func ParseGrass(rows []string) []core.Tile {
	var tiles []core.Tile
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == GlyphGrass {
				tiles = append(tiles, core.T(x, y))
			}
		}
	}
	return tiles
}

// Passable reports whether the layout tile at t exists and is not a wall.
func Passable(rows []string, t core.Tile) bool {
	if t.Y < 0 || t.Y >= len(rows) {
		return false
	}
	row := []rune(rows[t.Y])
	if t.X < 0 || t.X >= len(row) {
		return false
	}
	return row[t.X] != GlyphWall
}

// Walker moves one tile at a time over a layout, feeding every step into
// an encounter System.
type Walker struct {
	sys *System
	pos core.Tile
	rng core.Rand
}

var directions = [4]core.Tile{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// NewWalker places a walker on the first passable tile of the zone layout.
func NewWalker(sys *System, rng core.Rand) *Walker {
	w := &Walker{sys: sys, rng: rng}
	rows := sys.zone.Layout
	for y, row := range rows {
		for x := range []rune(row) {
			if Passable(rows, core.T(x, y)) {
				w.pos = core.T(x, y)
				return w
			}
		}
	}
	return w
}

// Pos returns the walker's tile.
func (w *Walker) Pos() core.Tile { return w.pos }

// Step moves to a random passable neighbour (staying put when boxed in)
// and checks for an encounter on the new tile.
func (w *Walker) Step() (*monster.Instance, error) {
	rows := w.sys.zone.Layout
	var options []core.Tile
	for _, d := range directions {
		next := w.pos.Add(d.X, d.Y)
		if Passable(rows, next) {
			options = append(options, next)
		}
	}
	if len(options) > 0 {
		w.pos = options[w.rng.Intn(len(options))]
	}
	return w.sys.CheckEncounter(w.pos.X, w.pos.Y)
}
