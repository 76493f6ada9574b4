package menu

import "testing"

// The toggle update must only match the document in the state the flip was
// computed from, so two concurrent toggles cannot both apply.
func TestToggleFilterPinsSnapshot(t *testing.T) {
	f := toggleFilter("42", true)
	if f["id"] != "42" {
		t.Errorf("id = %v, want 42", f["id"])
	}
	if f["available"] != true {
		t.Errorf("available = %v, want true", f["available"])
	}

	f = toggleFilter("42", false)
	if f["available"] != false {
		t.Errorf("available = %v, want false", f["available"])
	}
}
