package pipeline

import (
	"testing"
	"time"
)

func TestEuclideanWithin(t *testing.T) {
	center := ChunkCoord{X: 0, Z: 0}
	tests := []struct {
		name   string
		coord  ChunkCoord
		radius int32
		want   bool
	}{
		{"center_itself", ChunkCoord{0, 0}, 0, true},
		{"within_radius", ChunkCoord{1, 1}, 2, true},
		{"on_boundary", ChunkCoord{2, 0}, 2, true},
		{"outside_disc_corner", ChunkCoord{2, 2}, 2, false}, // distance sqrt(8) > 2
		{"view_distance_zero_only_center", ChunkCoord{1, 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := euclideanWithin(tt.coord, center, tt.radius); got != tt.want {
				t.Errorf("euclideanWithin(%+v, %+v, %d) = %v, want %v", tt.coord, center, tt.radius, got, tt.want)
			}
		})
	}
}

// TestDesiredSetViewDistanceZero is spec §8's boundary case: view-distance 0
// produces a desired set of exactly {player_chunk}.
func TestDesiredSetViewDistanceZero(t *testing.T) {
	center := ChunkCoord{X: 3, Z: -2}
	set := desiredSet(center, 0)
	if len(set) != 1 {
		t.Fatalf("len(desiredSet) = %d, want 1", len(set))
	}
	if _, ok := set[center]; !ok {
		t.Fatalf("desiredSet(viewDistance=0) does not contain the player's own chunk")
	}
}

func TestDesiredSetIsCircularDisc(t *testing.T) {
	center := ChunkCoord{X: 0, Z: 0}
	set := desiredSet(center, 2)
	for c := range set {
		if !euclideanWithin(c, center, 2) {
			t.Errorf("desiredSet contains %+v, which is outside radius 2 of %+v", c, center)
		}
	}
	// A coordinate strictly within the square but outside the disc (corner)
	// must be excluded.
	if _, ok := set[ChunkCoord{X: 2, Z: 2}]; ok {
		t.Error("desiredSet includes a square-corner coordinate outside the circular disc")
	}
}

// TestRequestMapIsDesired exercises the plain desired-set membership test
// used for enqueue/priority decisions (spec property 3's "Queued/Pending/
// Loading implies the coordinate is in the desired set" side).
func TestRequestMapIsDesired(t *testing.T) {
	m := newRequestMap()
	center := ChunkCoord{X: 0, Z: 0}
	m.mu.Lock()
	m.desired = desiredSet(center, 1)
	m.playerPos = center
	m.viewRadius = 1
	m.mu.Unlock()

	if !m.isDesired(ChunkCoord{0, 0}) {
		t.Error("isDesired(center) = false, want true")
	}
	if m.isDesired(ChunkCoord{10, 10}) {
		t.Error("isDesired(far coordinate) = true, want false")
	}
}

// TestRequestMapWithinUnloadBuffer is spec §9's resolved open question: the
// orphan check uses view-distance+UnloadBuffer, a strictly wider disc than
// the plain desired set, so a chunk just outside view distance is not
// immediately treated as an orphan.
func TestRequestMapWithinUnloadBuffer(t *testing.T) {
	m := newRequestMap()
	center := ChunkCoord{X: 0, Z: 0}
	m.mu.Lock()
	m.desired = desiredSet(center, 2)
	m.playerPos = center
	m.viewRadius = 2
	m.mu.Unlock()

	justOutside := ChunkCoord{X: 3, Z: 0} // outside view-distance 2, within 2+UnloadBuffer
	if m.isDesired(justOutside) {
		t.Fatalf("test setup: %+v unexpectedly inside the plain desired set", justOutside)
	}
	if !m.withinUnloadBuffer(justOutside) {
		t.Errorf("withinUnloadBuffer(%+v) = false, want true (within view-distance+UnloadBuffer)", justOutside)
	}

	farOutside := ChunkCoord{X: 100, Z: 100}
	if m.withinUnloadBuffer(farOutside) {
		t.Errorf("withinUnloadBuffer(%+v) = true, want false", farOutside)
	}
}

func TestRequestMapCompareAndSwap(t *testing.T) {
	m := newRequestMap()
	coord := ChunkCoord{X: 1, Z: 1}
	now := time.Unix(0, 0)
	req := newRequest(coord, 0, now)
	m.requests[coord] = req

	next := req.with(func(r *ChunkLoadRequest) { r.State = StateQueued })
	if !m.compareAndSwap(coord, req, next) {
		t.Fatal("compareAndSwap with the current snapshot should succeed")
	}
	if got, _ := m.get(coord); got != next {
		t.Fatalf("get(coord) after compareAndSwap = %+v, want the installed snapshot", got)
	}

	stale := req.with(func(r *ChunkLoadRequest) { r.State = StateFailed })
	if m.compareAndSwap(coord, req, stale) {
		t.Fatal("compareAndSwap against a stale snapshot should fail")
	}
}
