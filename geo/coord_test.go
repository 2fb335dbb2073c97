package geo

import (
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	a := Coord{0, 0}
	b := Coord{1, 0}
	d := HaversineDistance(a, b)
	// one degree of longitude at the equator
	if d < 110000 || d > 112000 {
		t.Errorf("d = %v; want ~111km", d)
	}

	if HaversineDistance(a, a) != 0 {
		t.Errorf("HaversineDistance(a, a) = %v; want 0", HaversineDistance(a, a))
	}

	if HaversineDistance(a, b) != HaversineDistance(b, a) {
		t.Errorf("haversine not symmetric")
	}
}

func TestHaversineLength(t *testing.T) {
	coords := CoordArray{{0, 0}, {1, 0}, {2, 0}}
	l := HaversineLength(coords)
	d := HaversineDistance(Coord{0, 0}, Coord{2, 0})
	diff := l - d
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		t.Errorf("l = %v; want %v", l, d)
	}

	if HaversineLength(CoordArray{{5, 5}}) != 0 {
		t.Errorf("single point length = %v; want 0", HaversineLength(CoordArray{{5, 5}}))
	}
}
