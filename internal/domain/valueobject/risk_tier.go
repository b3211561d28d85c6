package valueobject

import "fmt"

// Probability boundaries between tiers. A probability equal to a boundary
// belongs to the lower tier.
const (
	HighRiskThreshold   = 0.70
	MediumRiskThreshold = 0.40
)

// RiskTier is an immutable value object representing the cancellation risk bucket.
type RiskTier struct {
	value string
}

var (
	RiskTierLow    = RiskTier{value: "LOW"}
	RiskTierMedium = RiskTier{value: "MEDIUM"}
	RiskTierHigh   = RiskTier{value: "HIGH"}
)

// Recommendation is the fixed follow-up bound to a tier.
type Recommendation struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

var recommendations = map[string]Recommendation{
	"HIGH": {
		Action: "contact_guest",
		Title:  "Contact Guest Immediately",
		Detail: "Send a personal email to reconfirm the booking. Offer a small incentive (e.g., a drink voucher) if they pay a deposit now.",
	},
	"MEDIUM": {
		Action: "monitor",
		Title:  "Monitor Actively",
		Detail: "Add this booking to a watchlist. Send a standard reminder email 2 weeks before the free cancellation period ends.",
	},
	"LOW": {
		Action: "none",
		Title:  "No Special Action Needed",
		Detail: "This booking is likely secure. Focus your efforts on higher-risk customers.",
	},
}

var labels = map[string]string{
	"HIGH":   "Very High Risk",
	"MEDIUM": "Medium Risk",
	"LOW":    "Low Risk",
}

// RiskTierFromProbability maps a positive-class probability to its tier.
func RiskTierFromProbability(p float64) RiskTier {
	switch {
	case p > HighRiskThreshold:
		return RiskTierHigh
	case p > MediumRiskThreshold:
		return RiskTierMedium
	default:
		return RiskTierLow
	}
}

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "LOW":
		return RiskTierLow, nil
	case "MEDIUM":
		return RiskTierMedium, nil
	case "HIGH":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// Label returns the human-readable tier name.
func (r RiskTier) Label() string {
	return labels[r.value]
}

// Recommendation returns the recommended action for this tier.
func (r RiskTier) Recommendation() Recommendation {
	return recommendations[r.value]
}

// RequiresFollowUp is true for tiers whose recommendation asks staff to act.
func (r RiskTier) RequiresFollowUp() bool {
	return r.value == "HIGH" || r.value == "MEDIUM"
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}
