package staff

import "testing"

func TestActiveFilterPinsSnapshot(t *testing.T) {
	f := activeFilter("9", true)
	if f["id"] != "9" || f["active"] != true {
		t.Errorf("activeFilter(9, true) = %v", f)
	}
	if f := activeFilter("9", false); f["active"] != false {
		t.Errorf("activeFilter(9, false) = %v", f)
	}
}
