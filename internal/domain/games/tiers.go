package games

// RatingTier buckets a 0-100 rating for presentation.
type RatingTier string

const (
	TierMasterpiece RatingTier = "masterpiece"
	TierExcellent   RatingTier = "excellent"
	TierGreat       RatingTier = "great"
	TierGood        RatingTier = "good"
	TierDecent      RatingTier = "decent"
	TierMixed       RatingTier = "mixed"
	TierPoor        RatingTier = "poor"
)

// tierThresholds is ordered from the top tier down. A rating must strictly exceed a
// threshold to land in its tier, so a rating equal to a threshold falls one tier lower.
var tierThresholds = []struct {
	min  uint32
	tier RatingTier
}{
	{90, TierMasterpiece},
	{85, TierExcellent},
	{80, TierGreat},
	{75, TierGood},
	{70, TierDecent},
	{65, TierMixed},
}

// TierFor maps a rating to its presentation tier.
func TierFor(rating uint32) RatingTier {
	for _, t := range tierThresholds {
		if rating > t.min {
			return t.tier
		}
	}
	return TierPoor
}

// CSSClass returns the badge class used by the HTML views.
func (t RatingTier) CSSClass() string {
	switch t {
	case TierMasterpiece:
		return "rating-masterpiece"
	case TierExcellent:
		return "rating-excellent"
	case TierGreat:
		return "rating-great"
	case TierGood:
		return "rating-good"
	case TierDecent:
		return "rating-decent"
	case TierMixed:
		return "rating-mixed"
	default:
		return "rating-poor"
	}
}
