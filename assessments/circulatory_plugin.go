package assessments

import (
	"time"

	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/plugin"
)

// CirculatoryPlugin is a provisional risk calculation service for circulatory disease modeled after the JPHC
// circulatory risk check.  It is only applicable when HDL or total cholesterol was measured.
type CirculatoryPlugin struct {
}

// NewCirculatoryPlugin returns a new CirculatoryPlugin
func NewCirculatoryPlugin() *CirculatoryPlugin {
	return &CirculatoryPlugin{}
}

// Config provides the configuration parameters for the CirculatoryPlugin.  The pie holds one slice per
// vascular age risk factor.
func (p *CirculatoryPlugin) Config() plugin.RiskServicePluginConfig {
	return plugin.RiskServicePluginConfig{
		Name: "JPHC circulatory risk",
		Method: plugin.Coding{
			System: MethodSystem,
			Code:   "JPHC-CIRCULATORY",
			Text:   "JPHC circulatory risk (provisional)",
		},
		PredictedOutcomes: []string{"Cerebral Infarction", "Myocardial Infarction", "Stroke (all types)"},
		DefaultPieSlices: []plugin.Slice{
			{Name: assessment.FactorSmoking, Weight: 17, MaxValue: 1},
			{Name: assessment.FactorBloodPressure, Weight: 17, MaxValue: 1},
			{Name: assessment.FactorDiabetes, Weight: 17, MaxValue: 1},
			{Name: assessment.FactorLowHDL, Weight: 17, MaxValue: 1},
			{Name: assessment.FactorHighCholesterol, Weight: 16, MaxValue: 1},
			{Name: assessment.FactorOverweight, Weight: 16, MaxValue: 1},
		},
	}
}

// Calculate returns one result per predicted outcome, in the order of Config().PredictedOutcomes.  All results
// share the same pie.
func (p *CirculatoryPlugin) Calculate(in assessment.RiskFactorInput, subject string) ([]plugin.RiskServiceCalculationResult, error) {
	r := assessment.EvaluateCirculatoryRisk(in)
	if r == nil {
		return nil, plugin.NewNotApplicableError("Circulatory risk is only applicable when HDL or total cholesterol is known")
	}

	cfg := p.Config()
	pie := plugin.NewPieWithSlices(subject, cfg.DefaultPieSlices)
	for _, factor := range assessment.RiskFactors(in) {
		pie.UpdateSliceValue(factor, 1)
	}

	now := time.Now()
	risks := []assessment.DiseaseRisk{r.CerebralInfarction, r.MyocardialInfarction, r.TotalStroke}
	results := make([]plugin.RiskServiceCalculationResult, len(risks))
	for i, risk := range risks {
		percent := risk.Probability
		results[i] = plugin.RiskServiceCalculationResult{
			AsOf:               now,
			Outcome:            cfg.PredictedOutcomes[i],
			ProbabilityDecimal: &percent,
			RiskLevel:          risk.RiskLevel,
			Pie:                pie,
		}
	}
	return results, nil
}
