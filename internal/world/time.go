package world

// TimeState is the server's clock: a monotonic tick counter and a wrapping
// time-of-day, advanced once per world tick (spec §3, §4.3).
type TimeState struct {
	WorldAge  int64
	TimeOfDay int64
	Advancing bool
}

// NewTimeState starts at tick 0, dawn, with the day/night cycle running.
func NewTimeState() *TimeState {
	return &TimeState{Advancing: true}
}

const ticksPerDay = 24000

// Tick advances world_age unconditionally and time_of_day when the cycle is
// enabled, wrapping at 24000.
func (t *TimeState) Tick() {
	t.WorldAge++
	if t.Advancing {
		t.TimeOfDay = (t.TimeOfDay + 1) % ticksPerDay
	}
}

// SetTime explicitly sets time_of_day (e.g. from a serverbound admin
// command), independent of the tick-driven advance.
func (t *TimeState) SetTime(v int64) {
	t.TimeOfDay = v % ticksPerDay
	if t.TimeOfDay < 0 {
		t.TimeOfDay += ticksPerDay
	}
}
