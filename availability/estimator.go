// Package availability computes the per-day occupancy indicators that drive
// the booking calendar. Real booked-guest counts are perturbed by a random
// demand offset and a small list of dates is forced full; both are demo
// placeholders carried over from the original product, kept behind an
// injectable source so a live demand feed can replace them.
package availability

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"riviera/globals"
)

// DefaultCapacity is the club-wide guest ceiling used to turn booked counts
// into a fill percentage.
const DefaultCapacity = 200

// ForcedFullDates are always reported at 100% regardless of real demand.
// Demo override, not a confirmed business rule.
var ForcedFullDates = map[string]bool{
	"07-14": true,
	"08-15": true,
}

// WeeklyOffers keys a promotional offer by day of week. Suppressed out of
// season.
var WeeklyOffers = map[time.Weekday]string{
	time.Monday:    "Free sunbed with every full-day package",
	time.Tuesday:   "Aperitivo offered from 18h",
	time.Wednesday: "Kids eat free at the beach restaurant",
	time.Thursday:  "-20% on morning reservations",
	time.Friday:    "Complimentary shuttle cocktail",
	time.Saturday:  "Live DJ set at sunset",
	time.Sunday:    "Brunch formula at 35€",
}

// DayStatus is the per-date record consumed by the calendar renderer.
type DayStatus struct {
	Date        string `json:"date"`
	FillRate    int    `json:"fillRate"`
	Offer       string `json:"offer,omitempty"`
	OutOfSeason bool   `json:"isOutOfSeason,omitempty"`
}

// Estimator turns booked-guest counts into day statuses. Perturb is the
// simulated demand source; tests inject a deterministic one.
type Estimator struct {
	Capacity    int
	SeasonStart time.Month
	SeasonEnd   time.Month
	Perturb     func(date string) int
}

// NewEstimator builds the production estimator: season window from the
// environment (defaults May-September) and a random 0-30 point perturbation.
func NewEstimator() *Estimator {
	return &Estimator{
		Capacity:    DefaultCapacity,
		SeasonStart: envMonth("SEASON_START_MONTH", time.May),
		SeasonEnd:   envMonth("SEASON_END_MONTH", time.September),
		Perturb:     func(string) int { return rand.Intn(31) },
	}
}

func envMonth(key string, fallback time.Month) time.Month {
	if v := globals.EnvOr(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 12 {
			return time.Month(n)
		}
	}
	return fallback
}

// InSeason reports whether the month falls inside the opening window.
func (e *Estimator) InSeason(m time.Month) bool {
	if e.SeasonStart <= e.SeasonEnd {
		return m >= e.SeasonStart && m <= e.SeasonEnd
	}
	// window crossing the new year
	return m >= e.SeasonStart || m <= e.SeasonEnd
}

// ClampMonth keeps calendar navigation inside the season window. Months
// before the window wrap to the previous year's closing month; months after
// it wrap to the next year's opening month.
func (e *Estimator) ClampMonth(year int, month time.Month) (int, time.Month) {
	if e.InSeason(month) {
		return year, month
	}
	if month < e.SeasonStart {
		return year - 1, e.SeasonEnd
	}
	return year + 1, e.SeasonStart
}

// MonthStatus produces one DayStatus per calendar day of the month.
// bookedGuests maps "YYYY-MM-DD" to the summed guest count of pending and
// confirmed reservations on that date.
func (e *Estimator) MonthStatus(year int, month time.Month, bookedGuests map[string]int) []DayStatus {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	inSeason := e.InSeason(month)

	out := make([]DayStatus, 0, days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		key := date.Format("2006-01-02")

		st := DayStatus{Date: key}
		if !inSeason {
			st.FillRate = 100
			st.OutOfSeason = true
			out = append(out, st)
			continue
		}

		st.FillRate = e.fillRate(key, bookedGuests[key])
		st.Offer = WeeklyOffers[date.Weekday()]
		out = append(out, st)
	}
	return out
}

func (e *Estimator) fillRate(date string, guests int) int {
	if ForcedFullDates[date[5:]] {
		return 100
	}

	base := guests * 100 / e.Capacity
	if base > 100 {
		base = 100
	}
	if base < 0 {
		base = 0
	}

	rate := base + e.Perturb(date)
	if rate > 100 {
		rate = 100
	}
	return rate
}

// MonthRange returns the inclusive date bounds of a month as "YYYY-MM-DD"
// strings, for reservation queries.
func MonthRange(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// ParseMonth validates :year/:month path parameters.
func ParseMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, fmt.Errorf("invalid year")
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month")
	}
	return year, time.Month(m), nil
}
