// Package core provides fundamental types and utilities shared by the battle
// engine. It contains no external dependencies (especially no Bubble Tea) to
// keep engine logic pure and testable.
package core

import "fmt"

// Tile is a map coordinate on a zone's tile grid.
type Tile struct {
	X, Y int
}

// T is shorthand for constructing a Tile.
func T(x, y int) Tile {
	return Tile{X: x, Y: y}
}

// String returns the tile as "x,y".
func (t Tile) String() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// Add returns the tile offset by (dx, dy).
func (t Tile) Add(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
