package core

import "testing"

func TestTileString(t *testing.T) {
	tests := []struct {
		tile     Tile
		expected string
	}{
		{T(0, 0), "0,0"},
		{T(3, 7), "3,7"},
		{T(-1, 2), "-1,2"},
	}

	for _, tc := range tests {
		if got := tc.tile.String(); got != tc.expected {
			t.Errorf("%#v.String() = %q, expected %q", tc.tile, got, tc.expected)
		}
	}
}

func TestTileAdd(t *testing.T) {
	got := T(2, 3).Add(-1, 4)
	if got != T(1, 7) {
		t.Errorf("Add() = %v, expected (1,7)", got)
	}
}

func TestTileAsMapKey(t *testing.T) {
	set := map[Tile]struct{}{T(1, 1): {}}
	if _, ok := set[T(1, 1)]; !ok {
		t.Error("equal tiles should hash to the same key")
	}
	if _, ok := set[T(1, 2)]; ok {
		t.Error("different tiles should not collide")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
