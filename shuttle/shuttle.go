// Package shuttle simulates the dock-to-dock boat service: a fixed
// half-hourly timetable and a position derived purely from the wall clock.
// Provider is the seam where a live tracking feed would plug in.
package shuttle

import (
	"math/rand"
	"time"
)

const (
	Capacity = 12

	firstDepartureHour = 9
	lastDepartureHour  = 18
	middayCutoffHour   = 14
)

const (
	DirectionOutbound = "outbound"
	DirectionReturn   = "return"

	StatusLoading   = "loading"
	StatusSailing   = "sailing"
	StatusUnloading = "unloading"
)

// Departure is one timetable slot.
type Departure struct {
	Time      string `json:"time"` // "15:30"
	Direction string `json:"direction"`
	Booked    int    `json:"booked"`
	Capacity  int    `json:"capacity"`
	Next      bool   `json:"next"`
}

// Position is the simulated boat state at an instant.
type Position struct {
	Percent int    `json:"position"` // 0 = club dock, 100 = town dock
	Status  string `json:"status"`
}

// Provider yields schedule and position; the simulation and a future live
// telemetry feed share this contract.
type Provider interface {
	Schedule(now time.Time) []Departure
	Position(now time.Time) Position
}

// Simulator fabricates believable shuttle data from the clock. BookedFn
// supplies the fake per-slot booked count; tests pin it.
type Simulator struct {
	BookedFn func() int
}

func NewSimulator() *Simulator {
	return &Simulator{
		BookedFn: func() int { return 2 + rand.Intn(10) }, // 2..11
	}
}

// Schedule produces departures every 30 minutes from 09:00 to 18:00
// inclusive. There is no 18:30 run. Direction alternates on the midday
// cutoff and the first slot still ahead of now is flagged next.
func (s *Simulator) Schedule(now time.Time) []Departure {
	var out []Departure
	nextFlagged := false

	for hour := firstDepartureHour; hour <= lastDepartureHour; hour++ {
		for _, minute := range []int{0, 30} {
			if hour == lastDepartureHour && minute == 30 {
				continue
			}

			dep := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			d := Departure{
				Time:     dep.Format("15:04"),
				Booked:   s.BookedFn(),
				Capacity: Capacity,
			}
			if hour < middayCutoffHour {
				d.Direction = DirectionOutbound
			} else {
				d.Direction = DirectionReturn
			}
			if !nextFlagged && dep.After(now) {
				d.Next = true
				nextFlagged = true
			}
			out = append(out, d)
		}
	}
	return out
}

// Position derives the boat state from the minute of the hour. Each
// 30-minute cycle has four phases: loading (0-5), transit (5-15), unloading
// (15-20), transit back (20-30). The second half of the hour mirrors the
// first, so at minute 0 the boat sits at one dock and at minute 30 at the
// other.
func (s *Simulator) Position(now time.Time) Position {
	minute := now.Minute()
	cycle := minute % 30

	var pct int
	var status string
	switch {
	case cycle < 5:
		pct, status = 0, StatusLoading
	case cycle < 15:
		pct, status = (cycle-5)*10, StatusSailing
	case cycle < 20:
		pct, status = 100, StatusUnloading
	default:
		pct, status = 100-(cycle-20)*10, StatusSailing
	}

	if minute >= 30 {
		pct = 100 - pct
	}
	return Position{Percent: pct, Status: status}
}

// NextDeparture returns the next slot and the countdown to it. ok is false
// when every departure of the day has passed; callers regenerate the
// schedule for the next day instead of counting down a negative value.
func (s *Simulator) NextDeparture(now time.Time) (Departure, time.Duration, bool) {
	for _, d := range s.Schedule(now) {
		if !d.Next {
			continue
		}
		dep, _ := time.ParseInLocation("15:04", d.Time, now.Location())
		dep = time.Date(now.Year(), now.Month(), now.Day(), dep.Hour(), dep.Minute(), 0, 0, now.Location())
		return d, dep.Sub(now), true
	}
	return Departure{}, 0, false
}
