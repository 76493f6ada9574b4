package cms

import "testing"

// The visibility update must only match the document in the state the flip
// was computed from, so two concurrent toggles cannot both apply.
func TestVisibilityFilterPinsSnapshot(t *testing.T) {
	f := visibilityFilter("7", true)
	if f["id"] != "7" {
		t.Errorf("id = %v, want 7", f["id"])
	}
	if f["visible"] != true {
		t.Errorf("visible = %v, want true", f["visible"])
	}

	f = visibilityFilter("7", false)
	if f["visible"] != false {
		t.Errorf("visible = %v, want false", f["visible"])
	}
}
