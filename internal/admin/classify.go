package admin

// Tier is the presentation tier a record's status maps to. It is a
// design-level grouping, not a display string; rendering concrete
// labels or colors is the presentation layer's concern.
type Tier string

const (
	TierPositive Tier = "positive"
	TierWarning  Tier = "warning"
	TierNeutral  Tier = "neutral"
	TierDefault  Tier = "default"
)

// Classify maps a status or category value to its presentation tier.
// The mapping is shared by all four resource types.
func Classify(status string) Tier {
	switch status {
	case "completed", "published", "approved":
		return TierPositive
	case "in-progress":
		return TierWarning
	case "planned", "draft", "pending":
		return TierNeutral
	default:
		return TierDefault
	}
}
