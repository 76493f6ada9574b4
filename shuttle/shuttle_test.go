package shuttle

import (
	"testing"
	"time"
)

func fixedSim() *Simulator {
	return &Simulator{BookedFn: func() int { return 7 }}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.July, 10, hour, minute, 0, 0, time.UTC)
}

func TestScheduleShape(t *testing.T) {
	s := fixedSim()
	schedule := s.Schedule(at(8, 0))

	if len(schedule) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(schedule))
	}
	if schedule[0].Time != "09:00" {
		t.Errorf("first slot %s, want 09:00", schedule[0].Time)
	}
	if last := schedule[len(schedule)-1].Time; last != "18:00" {
		t.Errorf("last slot %s, want 18:00", last)
	}
	for _, d := range schedule {
		if d.Time == "18:30" {
			t.Error("18:30 slot must not exist")
		}
		if d.Capacity != Capacity {
			t.Errorf("%s: capacity %d, want %d", d.Time, d.Capacity, Capacity)
		}
	}

	// 30-minute spacing
	prev, _ := time.Parse("15:04", schedule[0].Time)
	for _, d := range schedule[1:] {
		cur, _ := time.Parse("15:04", d.Time)
		if cur.Sub(prev) != 30*time.Minute {
			t.Errorf("gap before %s is %v, want 30m", d.Time, cur.Sub(prev))
		}
		prev = cur
	}
}

func TestScheduleDirections(t *testing.T) {
	s := fixedSim()
	for _, d := range s.Schedule(at(8, 0)) {
		dep, _ := time.Parse("15:04", d.Time)
		want := DirectionReturn
		if dep.Hour() < 14 {
			want = DirectionOutbound
		}
		if d.Direction != want {
			t.Errorf("%s: direction %s, want %s", d.Time, d.Direction, want)
		}
	}
}

func TestExactlyOneNextSlot(t *testing.T) {
	s := fixedSim()
	cases := []struct {
		now      time.Time
		wantNext int
		wantTime string
	}{
		{at(8, 0), 1, "09:00"},
		{at(12, 15), 1, "12:30"},
		{at(17, 59), 1, "18:00"},
		{at(18, 0), 0, ""}, // 18:00 departure is not after now
		{at(22, 0), 0, ""},
	}
	for _, c := range cases {
		count := 0
		var nextTime string
		for _, d := range s.Schedule(c.now) {
			if d.Next {
				count++
				nextTime = d.Time
			}
		}
		if count != c.wantNext {
			t.Errorf("at %s: %d next flags, want %d", c.now.Format("15:04"), count, c.wantNext)
		}
		if c.wantNext == 1 && nextTime != c.wantTime {
			t.Errorf("at %s: next = %s, want %s", c.now.Format("15:04"), nextTime, c.wantTime)
		}
	}
}

func TestPositionBoundsAndStatus(t *testing.T) {
	s := fixedSim()
	valid := map[string]bool{StatusLoading: true, StatusSailing: true, StatusUnloading: true}
	for m := 0; m < 60; m++ {
		p := s.Position(at(11, m))
		if p.Percent < 0 || p.Percent > 100 {
			t.Errorf("minute %d: position %d out of range", m, p.Percent)
		}
		if !valid[p.Status] {
			t.Errorf("minute %d: unknown status %q", m, p.Status)
		}
	}
}

func TestPositionAtCycleStart(t *testing.T) {
	s := fixedSim()
	if p := s.Position(at(11, 0)); p.Percent != 0 || p.Status != StatusLoading {
		t.Errorf("minute 0: got %+v, want 0/loading", p)
	}
	if p := s.Position(at(11, 30)); p.Percent != 100 || p.Status != StatusLoading {
		t.Errorf("minute 30: got %+v, want 100/loading", p)
	}
}

func TestPositionMonotonicDuringTransit(t *testing.T) {
	s := fixedSim()
	// first half hour: outbound 5-14 increases, return 20-29 decreases
	prev := -1
	for m := 5; m < 15; m++ {
		p := s.Position(at(11, m))
		if p.Status != StatusSailing {
			t.Fatalf("minute %d: status %s, want sailing", m, p.Status)
		}
		if p.Percent <= prev {
			t.Errorf("minute %d: %d not increasing (prev %d)", m, p.Percent, prev)
		}
		prev = p.Percent
	}
	prev = 101
	for m := 20; m < 30; m++ {
		p := s.Position(at(11, m))
		if p.Percent >= prev {
			t.Errorf("minute %d: %d not decreasing (prev %d)", m, p.Percent, prev)
		}
		prev = p.Percent
	}
}

func TestNextDepartureCountdown(t *testing.T) {
	s := fixedSim()
	next, countdown, ok := s.NextDeparture(at(9, 10))
	if !ok {
		t.Fatal("expected a next departure")
	}
	if next.Time != "09:30" {
		t.Errorf("next = %s, want 09:30", next.Time)
	}
	if countdown != 20*time.Minute {
		t.Errorf("countdown = %v, want 20m", countdown)
	}

	if _, _, ok := s.NextDeparture(at(19, 0)); ok {
		t.Error("no departure should remain after 18:00")
	}
}

func TestBookedWithinRange(t *testing.T) {
	s := NewSimulator()
	for _, d := range s.Schedule(at(8, 0)) {
		if d.Booked < 2 || d.Booked > 11 {
			t.Errorf("%s: booked %d outside 2..11", d.Time, d.Booked)
		}
	}
}
