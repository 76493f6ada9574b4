package dashboard

import (
	"reflect"
	"strings"
	"testing"

	"riviera/reservations"

	"go.mongodb.org/mongo-driver/bson"
)

// Every key the upcoming-bookings filter queries must be a field that is
// actually stored on a reservation document.
func TestUpcomingFilterMatchesStoredFields(t *testing.T) {
	stored := map[string]bool{}
	rt := reflect.TypeOf(reservations.Reservation{})
	for i := 0; i < rt.NumField(); i++ {
		tag := strings.Split(rt.Field(i).Tag.Get("bson"), ",")[0]
		if tag != "" && tag != "-" {
			stored[tag] = true
		}
	}

	filter := upcomingFilter("guest@example.com", "2026-07-01")
	for key := range filter {
		if !stored[key] {
			t.Errorf("filter key %q is not a stored reservation field", key)
		}
	}
}

func TestUpcomingFilterShape(t *testing.T) {
	filter := upcomingFilter("guest@example.com", "2026-07-01")

	if filter["email"] != "guest@example.com" {
		t.Errorf("email = %v, want guest@example.com", filter["email"])
	}
	date, ok := filter["date"].(bson.M)
	if !ok || date["$gte"] != "2026-07-01" {
		t.Errorf("date bound = %v, want $gte 2026-07-01", filter["date"])
	}

	status, ok := filter["status"].(bson.M)
	if !ok {
		t.Fatalf("status clause = %v, want $in", filter["status"])
	}
	in, ok := status["$in"].([]string)
	if !ok || len(in) != 2 {
		t.Fatalf("status $in = %v, want pending and confirmed", status["$in"])
	}
	want := map[string]bool{"pending": true, "confirmed": true}
	for _, s := range in {
		if !want[s] {
			t.Errorf("unexpected status %q in filter", s)
		}
	}
}
