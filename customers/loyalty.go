package customers

// Loyalty tiers
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// pointsPerVisit is credited each time a reservation is confirmed.
const pointsPerVisit = 10

// TierFor derives the loyalty tier purely from the visit count.
func TierFor(visitCount int) string {
	switch {
	case visitCount >= 20:
		return TierPlatinum
	case visitCount >= 10:
		return TierGold
	case visitCount >= 5:
		return TierSilver
	default:
		return TierBronze
	}
}
