package assessments

import (
	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/plugin"
	. "gopkg.in/check.v1"
)

type CirculatoryPluginSuite struct {
	Plugin  *CirculatoryPlugin
	Subject string
}

var _ = Suite(&CirculatoryPluginSuite{})

func (cs *CirculatoryPluginSuite) SetUpSuite(c *C) {
	cs.Plugin = NewCirculatoryPlugin()
	cs.Subject = "http://example.org/checks/1223"
}

func (cs *CirculatoryPluginSuite) TestNotApplicableWithoutCholesterol(c *C) {
	in := typicalInput()
	in.LDLCholesterol = ptrToFlt(180)
	results, err := cs.Plugin.Calculate(in, cs.Subject)
	c.Assert(results, IsNil)
	c.Assert(err, FitsTypeOf, plugin.NotApplicableError{})
}

func (cs *CirculatoryPluginSuite) TestSmokerWithHighCholesterol(c *C) {
	results, err := cs.Plugin.Calculate(withLipids(typicalInput(), 35, 250), cs.Subject)
	c.Assert(err, IsNil)
	c.Assert(results, HasLen, 3)

	expected := []struct {
		outcome string
		percent float64
		level   assessment.RiskLevel
	}{
		{"Cerebral Infarction", 11, assessment.High},
		{"Myocardial Infarction", 12, assessment.High},
		{"Stroke (all types)", 13.5, assessment.High},
	}
	for i, e := range expected {
		c.Assert(results[i].Outcome, Equals, e.outcome)
		c.Assert(results[i].Score, IsNil)
		c.Assert(*results[i].ProbabilityDecimal, Equals, e.percent)
		c.Assert(*results[i].GetProbabilityDecimalOrScore(), Equals, e.percent)
		c.Assert(results[i].RiskLevel, Equals, e.level)
		c.Assert(results[i].Pie, Equals, results[0].Pie)
	}

	pie := results[0].Pie
	c.Assert(pie.Subject, Equals, cs.Subject)
	c.Assert(pie.TotalValues(), Equals, 5)
	values := map[string]int{}
	for _, s := range pie.Slices {
		values[s.Name] = s.Value
	}
	c.Assert(values, DeepEquals, map[string]int{
		"Smoking":          1,
		"Blood Pressure":   1,
		"Diabetes":         0,
		"Low HDL":          1,
		"High Cholesterol": 1,
		"Overweight":       1,
	})
}

func (cs *CirculatoryPluginSuite) TestPieTotalMatchesVascularAge(c *C) {
	in := withLipids(typicalInput(), 35, 250)
	in.HasDiabetes = true
	results, err := cs.Plugin.Calculate(in, cs.Subject)
	c.Assert(err, IsNil)
	pie := results[0].Pie
	c.Assert(pie.TotalValues(), Equals, 6)
	c.Assert(in.Age+3*pie.TotalValues(), Equals, assessment.VascularAge(in))
}

func (cs *CirculatoryPluginSuite) TestConfigOutcomesMatchResults(c *C) {
	results, err := cs.Plugin.Calculate(withLipids(typicalInput(), 55, 180), cs.Subject)
	c.Assert(err, IsNil)
	outcomes := make([]string, len(results))
	for i := range results {
		outcomes[i] = results[i].Outcome
	}
	c.Assert(outcomes, DeepEquals, cs.Plugin.Config().PredictedOutcomes)
}
