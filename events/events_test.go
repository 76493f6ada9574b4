package events

import "testing"

func TestPublishFilterPinsSnapshot(t *testing.T) {
	f := publishFilter("3", true)
	if f["id"] != "3" || f["published"] != true {
		t.Errorf("publishFilter(3, true) = %v", f)
	}
	if f := publishFilter("3", false); f["published"] != false {
		t.Errorf("publishFilter(3, false) = %v", f)
	}
}
