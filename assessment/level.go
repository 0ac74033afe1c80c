package assessment

// RiskLevel is the category shown to the user for a 10-year probability.
type RiskLevel string

const (
	Low      RiskLevel = "low"
	Moderate RiskLevel = "moderate"
	High     RiskLevel = "high"
	VeryHigh RiskLevel = "very_high"
)

// RiskLevels lists every level from lowest to highest.
var RiskLevels = []RiskLevel{Low, Moderate, High, VeryHigh}

var levelByProbability = below(VeryHigh,
	step[float64, RiskLevel]{5, Low},
	step[float64, RiskLevel]{10, Moderate},
	step[float64, RiskLevel]{15, High},
)

// LevelForProbability maps a probability (in percent) to its RiskLevel.  Each threshold belongs to the higher
// level, so exactly 5.0 is Moderate, 10.0 is High and 15.0 is VeryHigh.
func LevelForProbability(probability float64) RiskLevel {
	return levelByProbability.lookup(probability)
}

// Label returns the Japanese display text for the level.
func (l RiskLevel) Label() string {
	switch l {
	case Low:
		return "低リスク"
	case Moderate:
		return "中リスク"
	case High:
		return "高リスク"
	case VeryHigh:
		return "非常に高リスク"
	}
	return ""
}

// Color returns the display color token: green, yellow, orange and red from Low to VeryHigh.
func (l RiskLevel) Color() string {
	switch l {
	case Low:
		return "#10b981"
	case Moderate:
		return "#fbbf24"
	case High:
		return "#f97316"
	case VeryHigh:
		return "#ef4444"
	}
	return ""
}

// Valid reports whether l is one of the four known levels.
func (l RiskLevel) Valid() bool {
	return l.Label() != ""
}
