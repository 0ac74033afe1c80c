package assessments

import (
	"time"

	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/plugin"
)

// MethodSystem is the coding system for the scoring methods implemented in this package
const MethodSystem = "http://interventionengine.org/risk-assessments"

// StrokeScorePlugin is a risk calculation service implementing the JPHC 10-year stroke risk score for
// Japanese adults aged 40 to 69: https://epi.ncc.go.jp/riskcheck/stroke/
type StrokeScorePlugin struct {
}

// NewStrokeScorePlugin returns a new StrokeScorePlugin
func NewStrokeScorePlugin() *StrokeScorePlugin {
	return &StrokeScorePlugin{}
}

// Config provides the configuration parameters for the StrokeScorePlugin
func (s *StrokeScorePlugin) Config() plugin.RiskServicePluginConfig {
	return plugin.RiskServicePluginConfig{
		Name: "JPHC stroke score",
		Method: plugin.Coding{
			System: MethodSystem,
			Code:   "JPHC-STROKE",
			Text:   "JPHC stroke score",
		},
		PredictedOutcomes: []string{"Stroke"},
		DefaultPieSlices: []plugin.Slice{
			{Name: "Age", Weight: 33, MaxValue: 19},
			{Name: "Gender", Weight: 10, MaxValue: 6},
			{Name: "Smoking", Weight: 14, MaxValue: 8},
			{Name: "BMI", Weight: 5, MaxValue: 3},
			{Name: "Blood Pressure", Weight: 26, MaxValue: 15},
			{Name: "Diabetes", Weight: 12, MaxValue: 7},
		},
	}
}

// Calculate scores the input and returns a single stroke result whose pie holds the six sub-scores
func (s *StrokeScorePlugin) Calculate(in assessment.RiskFactorInput, subject string) ([]plugin.RiskServiceCalculationResult, error) {
	r := assessment.EvaluateStrokeRisk(in)

	pie := plugin.NewPieWithSlices(subject, s.Config().DefaultPieSlices)
	pie.UpdateSliceValue("Age", r.AgeScore)
	pie.UpdateSliceValue("Gender", r.GenderScore)
	pie.UpdateSliceValue("Smoking", r.SmokingScore)
	pie.UpdateSliceValue("BMI", r.BMIScore)
	pie.UpdateSliceValue("Blood Pressure", r.BPScore)
	pie.UpdateSliceValue("Diabetes", r.DiabetesScore)

	score := r.TotalScore
	percent := r.RiskProbability
	return []plugin.RiskServiceCalculationResult{
		{
			AsOf:               time.Now(),
			Outcome:            "Stroke",
			Score:              &score,
			ProbabilityDecimal: &percent,
			RiskLevel:          r.RiskLevel,
			Pie:                pie,
		},
	}, nil
}
