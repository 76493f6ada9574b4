package reservations

import "testing"

func TestEstimatePrice(t *testing.T) {
	cases := []struct {
		slot   string
		guests int
		base   float64
		want   float64
	}{
		{SlotFullDay, 2, 0, 120},
		{SlotMorning, 4, 0, 140},
		{SlotAfternoon, 1, 0, 35},
		{SlotFullDay, 2, 80, 200},
		{"unknown", 3, 0, 0},
	}
	for _, c := range cases {
		if got := EstimatePrice(c.slot, c.guests, c.base); got != c.want {
			t.Errorf("EstimatePrice(%s, %d, %.0f) = %.0f, want %.0f",
				c.slot, c.guests, c.base, got, c.want)
		}
	}
}

func TestSignPassShape(t *testing.T) {
	payload := signPass("123", "abc")
	// reservationID|passCode|timestamp|signature
	parts := 1
	for _, ch := range payload {
		if ch == '|' {
			parts++
		}
	}
	if parts != 4 {
		t.Errorf("payload has %d fields, want 4: %s", parts, payload)
	}
}
