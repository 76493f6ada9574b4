package availability

import (
	"testing"
	"time"
)

func testEstimator(perturb int) *Estimator {
	return &Estimator{
		Capacity:    200,
		SeasonStart: time.May,
		SeasonEnd:   time.September,
		Perturb:     func(string) int { return perturb },
	}
}

func TestOutOfSeasonForcedFull(t *testing.T) {
	e := testEstimator(0)
	// heavy demand data on an out-of-season month must not matter
	booked := map[string]int{"2026-02-10": 500}

	days := e.MonthStatus(2026, time.February, booked)
	if len(days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(days))
	}
	for _, d := range days {
		if d.FillRate != 100 {
			t.Errorf("%s: out-of-season fill = %d, want 100", d.Date, d.FillRate)
		}
		if !d.OutOfSeason {
			t.Errorf("%s: missing isOutOfSeason", d.Date)
		}
		if d.Offer != "" {
			t.Errorf("%s: offer %q must be suppressed out of season", d.Date, d.Offer)
		}
	}
}

func TestFillRateFromBookedGuests(t *testing.T) {
	e := testEstimator(0)
	booked := map[string]int{
		"2026-06-10": 100, // 50% of capacity
		"2026-06-11": 400, // over capacity, clamps to 100
	}

	days := e.MonthStatus(2026, time.June, booked)
	byDate := map[string]DayStatus{}
	for _, d := range days {
		byDate[d.Date] = d
	}

	if got := byDate["2026-06-10"].FillRate; got != 50 {
		t.Errorf("fill = %d, want 50", got)
	}
	if got := byDate["2026-06-11"].FillRate; got != 100 {
		t.Errorf("overbooked fill = %d, want 100", got)
	}
	if got := byDate["2026-06-12"].FillRate; got != 0 {
		t.Errorf("empty day fill = %d, want 0", got)
	}
}

func TestPerturbationClampsAtHundred(t *testing.T) {
	e := testEstimator(30)
	booked := map[string]int{"2026-06-10": 180} // 90% base + 30 -> clamp

	days := e.MonthStatus(2026, time.June, booked)
	for _, d := range days {
		if d.FillRate > 100 || d.FillRate < 0 {
			t.Errorf("%s: fill %d out of range", d.Date, d.FillRate)
		}
		if d.Date == "2026-06-10" && d.FillRate != 100 {
			t.Errorf("perturbed fill = %d, want 100", d.FillRate)
		}
	}
}

func TestForcedFullDates(t *testing.T) {
	e := testEstimator(0)
	days := e.MonthStatus(2026, time.July, nil)
	for _, d := range days {
		if d.Date == "2026-07-14" && d.FillRate != 100 {
			t.Errorf("forced date fill = %d, want 100", d.FillRate)
		}
	}
}

func TestWeeklyOfferAttached(t *testing.T) {
	e := testEstimator(0)
	days := e.MonthStatus(2026, time.June, nil)
	for _, d := range days {
		date, _ := time.Parse("2006-01-02", d.Date)
		if want := WeeklyOffers[date.Weekday()]; d.Offer != want {
			t.Errorf("%s: offer %q, want %q", d.Date, d.Offer, want)
		}
	}
}

func TestClampMonthWrapsToAdjacentYear(t *testing.T) {
	e := testEstimator(0)
	cases := []struct {
		year      int
		month     time.Month
		wantYear  int
		wantMonth time.Month
	}{
		{2026, time.June, 2026, time.June},
		{2026, time.May, 2026, time.May},
		{2026, time.September, 2026, time.September},
		{2026, time.February, 2025, time.September},
		{2026, time.November, 2027, time.May},
	}
	for _, c := range cases {
		y, m := e.ClampMonth(c.year, c.month)
		if y != c.wantYear || m != c.wantMonth {
			t.Errorf("ClampMonth(%d,%s) = (%d,%s), want (%d,%s)",
				c.year, c.month, y, m, c.wantYear, c.wantMonth)
		}
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2026, time.June)
	if from != "2026-06-01" || to != "2026-06-30" {
		t.Errorf("got %s..%s", from, to)
	}
}
