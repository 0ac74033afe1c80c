package plugin

import (
	"sort"
	"time"

	"github.com/intervention-engine/strokerisk/assessment"
)

// RiskServicePlugin provides the interface that risk service plugins should adhere to.  A plugin wraps one
// scoring model and turns a validated RiskFactorInput into results the service can store and serve.
type RiskServicePlugin interface {
	// Config returns the configuration information for the risk service plugin
	Config() RiskServicePluginConfig
	// Calculate accepts a validated input and returns one RiskServiceCalculationResult per predicted outcome.
	// The subject identifies whose check this is and is recorded on the result pies.  A plugin whose model
	// does not apply to the input returns a NotApplicableError.
	Calculate(in assessment.RiskFactorInput, subject string) ([]RiskServiceCalculationResult, error)
}

// RiskServicePluginConfig represents key information about the risk service plugin.
type RiskServicePluginConfig struct {
	Name              string
	Method            Coding
	PredictedOutcomes []string
	DefaultPieSlices  []Slice
}

// Coding identifies a scoring method.
type Coding struct {
	System string `json:"system" bson:"system"`
	Code   string `json:"code" bson:"code"`
	Text   string `json:"text,omitempty" bson:"text,omitempty"`
}

// RiskServiceCalculationResult represents a risk assessment for one predicted outcome.  The Score indicates a
// raw score from the algorithm (if applicable), while the ProbabilityDecimal represents a percentage
// probability of the predicted outcome.  Since it is a percentage, the value should never exceed 100.
type RiskServiceCalculationResult struct {
	AsOf               time.Time
	Outcome            string
	Score              *int
	ProbabilityDecimal *float64
	RiskLevel          assessment.RiskLevel
	Pie                *Pie
}

// GetProbabilityDecimalOrScore returns the ProbabilityDecimal value if it exists, otherwise it returns the score.
func (r *RiskServiceCalculationResult) GetProbabilityDecimalOrScore() *float64 {
	if r.ProbabilityDecimal != nil {
		return r.ProbabilityDecimal
	} else if r.Score != nil {
		f := float64(*r.Score)
		return &f
	}
	return nil
}

// SortResultsByOutcome sorts the results by outcome name
func SortResultsByOutcome(results []RiskServiceCalculationResult) {
	// Stable sort to preserve original order when outcomes are the same
	sort.Stable(byOutcome(results))
}

type byOutcome []RiskServiceCalculationResult

func (d byOutcome) Len() int {
	return len(d)
}
func (d byOutcome) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}
func (d byOutcome) Less(i, j int) bool {
	return d[i].Outcome < d[j].Outcome
}

// NotApplicableError indicates that the given algorithm is not applicable
// for the requested input.  It would be inappropriate to return a score.
type NotApplicableError struct {
	msg string
}

// NewNotApplicableError returns a new NotApplicableError with the given
// message.
func NewNotApplicableError(msg string) NotApplicableError {
	return NotApplicableError{msg: msg}
}

func (e NotApplicableError) Error() string { return e.msg }
