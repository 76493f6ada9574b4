package customers

import "testing"

func TestTierThresholds(t *testing.T) {
	cases := []struct {
		visits int
		want   string
	}{
		{0, TierBronze},
		{1, TierBronze},
		{4, TierBronze},
		{5, TierSilver},
		{9, TierSilver},
		{10, TierGold},
		{19, TierGold},
		{20, TierPlatinum},
		{100, TierPlatinum},
	}
	for _, c := range cases {
		if got := TierFor(c.visits); got != c.want {
			t.Errorf("TierFor(%d) = %s, want %s", c.visits, got, c.want)
		}
	}
}

func TestTierNoGaps(t *testing.T) {
	valid := map[string]bool{TierBronze: true, TierSilver: true, TierGold: true, TierPlatinum: true}
	prev := TierFor(0)
	for v := 0; v <= 50; v++ {
		tier := TierFor(v)
		if !valid[tier] {
			t.Fatalf("TierFor(%d) = %q, not a known tier", v, tier)
		}
		// tiers only move upward as visits grow
		if rank(tier) < rank(prev) {
			t.Errorf("tier regressed at %d visits: %s -> %s", v, prev, tier)
		}
		prev = tier
	}
}

func rank(tier string) int {
	switch tier {
	case TierBronze:
		return 0
	case TierSilver:
		return 1
	case TierGold:
		return 2
	default:
		return 3
	}
}
