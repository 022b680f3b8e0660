package domain

// RiskLevel is the classifier's categorical output.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ClassCount is the number of risk classes the model distinguishes.
const ClassCount = 3

// riskByCode is the fixed class-index → label mapping the model was trained
// with: 0 → Low, 1 → Medium, 2 → High.
var riskByCode = [ClassCount]RiskLevel{RiskLow, RiskMedium, RiskHigh}

// RiskFromCode maps a class index to its label. ok is false for indices
// outside [0, ClassCount).
func RiskFromCode(code int) (level RiskLevel, ok bool) {
	if code < 0 || code >= ClassCount {
		return "", false
	}
	return riskByCode[code], true
}

// Code returns the class index for a label, or -1 for an unknown label.
func (l RiskLevel) Code() int {
	for i, level := range riskByCode {
		if level == l {
			return i
		}
	}
	return -1
}

// Distribution is a categorical probability distribution over the risk
// classes, indexed by class code. Values sum to 1 within floating-point
// tolerance.
type Distribution [ClassCount]float64

// ArgMax returns the index of the most probable class. Ties resolve to the
// lowest index.
func (d Distribution) ArgMax() int {
	best := 0
	for i := 1; i < ClassCount; i++ {
		if d[i] > d[best] {
			best = i
		}
	}
	return best
}

// Sum returns the total probability mass, useful for contract checks.
func (d Distribution) Sum() float64 {
	return d[0] + d[1] + d[2]
}

// Confidence is the client-facing view of a Distribution.
type Confidence struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// ConfidenceFromDistribution maps class probabilities to their labels.
func ConfidenceFromDistribution(d Distribution) Confidence {
	return Confidence{Low: d[0], Medium: d[1], High: d[2]}
}

// recommendationsByLevel is the fixed advisory table. The strings are part of
// the API contract and must not be reworded.
var recommendationsByLevel = map[RiskLevel][]string{
	RiskLow: {
		"Conditions are safe for outdoor activities",
		"Stay hydrated with regular water intake",
		"Normal precautions are sufficient",
	},
	RiskMedium: {
		"Stay hydrated - drink water every 30-45 minutes",
		"Limit outdoor activities during peak afternoon hours",
		"Wear light, loose-fitting clothing",
		"Take frequent breaks in shaded areas",
	},
	RiskHigh: {
		"Stay indoors as much as possible",
		"Drink water every 20-30 minutes",
		"Avoid ALL outdoor activities between 11 AM - 5 PM",
		"Seek air-conditioned environments",
		"Know heatstroke symptoms: confusion, dizziness, nausea",
	},
}

// Recommendations returns the ordered advisory list for a risk level.
// Unknown levels yield an empty list rather than an error. The returned slice
// is a copy; callers may mutate it freely.
func Recommendations(level RiskLevel) []string {
	fixed, ok := recommendationsByLevel[level]
	if !ok {
		return []string{}
	}
	out := make([]string, len(fixed))
	copy(out, fixed)
	return out
}
