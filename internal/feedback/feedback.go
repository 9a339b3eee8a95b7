// Package feedback maps a similarity percentage to a qualitative tier and message.
package feedback

import "fmt"

// Tier is a discrete feedback band.
type Tier string

const (
	// TierExcellent is a match of at least 80%.
	TierExcellent Tier = "EXCELLENT"
	// TierGood is a match of at least 60% and below 80%.
	TierGood Tier = "GOOD"
	// TierFair is a match of at least 40% and below 60%.
	TierFair Tier = "FAIR"
	// TierWeak is anything below 40%.
	TierWeak Tier = "WEAK"
)

// Lower bounds of each tier, inclusive.
const (
	excellentThreshold = 80.0
	goodThreshold      = 60.0
	fairThreshold      = 40.0
)

// Feedback is the classification of a similarity score.
type Feedback struct {
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

// Classifier produces feedback messages, optionally naming the hiring organization.
// The zero value is ready to use.
type Classifier struct {
	organization string
}

// NewClassifier returns a Classifier whose messages mention organization.
// An empty organization produces generic wording.
func NewClassifier(organization string) Classifier {
	return Classifier{organization: organization}
}

// Classify returns the tier and message for percent. Every input maps to exactly one
// tier; values that fail all comparisons (NaN) fall through to TierWeak.
func (c Classifier) Classify(percent float64) Feedback {
	tier := TierFor(percent)
	return Feedback{Tier: tier, Message: c.message(tier)}
}

// Classify classifies percent with generic wording.
func Classify(percent float64) Feedback {
	return Classifier{}.Classify(percent)
}

// TierFor returns the tier for percent.
func TierFor(percent float64) Tier {
	switch {
	case percent >= excellentThreshold:
		return TierExcellent
	case percent >= goodThreshold:
		return TierGood
	case percent >= fairThreshold:
		return TierFair
	default:
		return TierWeak
	}
}

func (c Classifier) message(tier Tier) string {
	role := "this role"
	job := "this job"
	if c.organization != "" {
		role = fmt.Sprintf("this role at %s", c.organization)
		job = fmt.Sprintf("this job at %s", c.organization)
	}

	switch tier {
	case TierExcellent:
		return fmt.Sprintf("🎉 Excellent, you are a perfect fit for %s!", role)
	case TierGood:
		return fmt.Sprintf("✅ Great! You are a good candidate for %s. Improve a few skills to reach 100%%!", job)
	case TierFair:
		return fmt.Sprintf("⚠️ You match some of the requirements for %s. Try adding more relevant skills.", role)
	default:
		return fmt.Sprintf("❌ Currently, you are not a strong fit for %s. Focus on building your technical foundation.", job)
	}
}
