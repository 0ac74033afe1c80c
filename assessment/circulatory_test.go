package assessment

import (
	. "gopkg.in/check.v1"
)

type CirculatorySuite struct{}

var _ = Suite(&CirculatorySuite{})

func ptrToFlt(f float64) *float64 {
	return &f
}

// smokerWithHighCholesterol is a 50 year old current smoker with untreated systolic 150, HDL 35, total
// cholesterol 250 (no LDL) and a BMI of about 27.
func smokerWithHighCholesterol() RiskFactorInput {
	return RiskFactorInput{
		Age:              50,
		Gender:           Male,
		Smoking:          CurrentSmoker,
		HeightCm:         170,
		WeightKg:         78,
		SystolicBP:       150,
		DiastolicBP:      95,
		HDLCholesterol:   ptrToFlt(35),
		TotalCholesterol: ptrToFlt(250),
	}
}

func (s *CirculatorySuite) TestNotApplicableWithoutHDLOrTotalCholesterol(c *C) {
	in := RiskFactorInput{
		Age:            60,
		Gender:         Male,
		Smoking:        CurrentSmoker,
		HeightCm:       170,
		WeightKg:       70,
		SystolicBP:     150,
		DiastolicBP:    95,
		OnBPMedication: true,
		HasDiabetes:    true,
		LDLCholesterol: ptrToFlt(180),
		Triglycerides:  ptrToFlt(200),
	}
	c.Assert(EvaluateCirculatoryRisk(in), IsNil)
}

func (s *CirculatorySuite) TestApplicableWithEitherHDLOrTotalCholesterol(c *C) {
	in := RiskFactorInput{Age: 45, Gender: Female, Smoking: NeverSmoked, HeightCm: 160, WeightKg: 50, SystolicBP: 110, DiastolicBP: 70}
	in.HDLCholesterol = ptrToFlt(55)
	c.Assert(EvaluateCirculatoryRisk(in), NotNil)
	in.HDLCholesterol = nil
	in.TotalCholesterol = ptrToFlt(200)
	c.Assert(EvaluateCirculatoryRisk(in), NotNil)
}

func (s *CirculatorySuite) TestSmokerWithHighCholesterol(c *C) {
	r := EvaluateCirculatoryRisk(smokerWithHighCholesterol())
	c.Assert(r, NotNil)
	c.Assert(*r, DeepEquals, CirculatoryRiskResult{
		CerebralInfarction:   DiseaseRisk{Probability: 11, RiskLevel: High},
		MyocardialInfarction: DiseaseRisk{Probability: 12, RiskLevel: High},
		TotalStroke:          DiseaseRisk{Probability: 13.5, RiskLevel: High},
		VascularAge:          65,
		AgeDifference:        15,
	})
}

func (s *CirculatorySuite) TestVascularAge(c *C) {
	in := smokerWithHighCholesterol()
	c.Assert(RiskFactorCount(in), Equals, 5)
	c.Assert(VascularAge(in), Equals, 65)

	in.HasDiabetes = true
	c.Assert(RiskFactorCount(in), Equals, 6)
	c.Assert(VascularAge(in), Equals, 68)
}

func (s *CirculatorySuite) TestVascularAgeWithoutRiskFactors(c *C) {
	in := RiskFactorInput{
		Age:            47,
		Gender:         Female,
		Smoking:        PastSmoker,
		HeightCm:       165,
		WeightKg:       55,
		SystolicBP:     139,
		DiastolicBP:    85,
		HDLCholesterol: ptrToFlt(40),
	}
	r := EvaluateCirculatoryRisk(in)
	c.Assert(r.VascularAge, Equals, 47)
	c.Assert(r.AgeDifference, Equals, 0)
}

func (s *CirculatorySuite) TestTreatedHypertensionCountsAsRiskFactor(c *C) {
	in := RiskFactorInput{Age: 60, Gender: Female, Smoking: NeverSmoked, HeightCm: 160, WeightKg: 50, SystolicBP: 120, DiastolicBP: 75, OnBPMedication: true, HDLCholesterol: ptrToFlt(50)}
	c.Assert(RiskFactorCount(in), Equals, 1)
}

func (s *CirculatorySuite) TestLDLTakesPrecedenceOverTotalCholesterol(c *C) {
	in := RiskFactorInput{
		Age:              40,
		Gender:           Female,
		Smoking:          NeverSmoked,
		HeightCm:         160,
		WeightKg:         50,
		SystolicBP:       110,
		DiastolicBP:      70,
		HDLCholesterol:   ptrToFlt(50),
		LDLCholesterol:   ptrToFlt(100),
		TotalCholesterol: ptrToFlt(300),
	}
	// a normal LDL hides the high total cholesterol completely
	c.Assert(effectiveLipidScore(in, cerebralInfarctionLipids), Equals, 0.0)
	c.Assert(effectiveLipidScore(in, myocardialInfarctionLipids), Equals, 0.0)
	c.Assert(effectiveLipidScore(in, highCholesterolFlag), Equals, 0.0)
	c.Assert(CerebralInfarctionRisk(in), Equals, 1.0)
	c.Assert(MyocardialInfarctionRisk(in), Equals, 0.5)
	c.Assert(RiskFactorCount(in), Equals, 0)

	in.LDLCholesterol = nil
	c.Assert(effectiveLipidScore(in, cerebralInfarctionLipids), Equals, 2.0)
	c.Assert(effectiveLipidScore(in, myocardialInfarctionLipids), Equals, 2.5)
	c.Assert(RiskFactorCount(in), Equals, 1)
}

func (s *CirculatorySuite) TestEffectiveLipidScoreBands(c *C) {
	in := RiskFactorInput{}
	c.Assert(effectiveLipidScore(in, cerebralInfarctionLipids), Equals, 0.0)

	ldl := []struct {
		value                float64
		cerebral, myocardial float64
	}{
		{119, 0, 0}, {120, 1, 1}, {139, 1, 1}, {140, 1.5, 2}, {159, 1.5, 2}, {160, 2, 3}, {210, 2, 3},
	}
	for _, t := range ldl {
		in.LDLCholesterol = ptrToFlt(t.value)
		c.Assert(effectiveLipidScore(in, cerebralInfarctionLipids), Equals, t.cerebral, Commentf("LDL %v", t.value))
		c.Assert(effectiveLipidScore(in, myocardialInfarctionLipids), Equals, t.myocardial, Commentf("LDL %v", t.value))
	}

	in.LDLCholesterol = nil
	total := []struct {
		value                float64
		cerebral, myocardial float64
	}{
		{219, 0, 0}, {220, 1, 1}, {239, 1, 1}, {240, 1.5, 2}, {259, 1.5, 2}, {260, 2, 2.5}, {320, 2, 2.5},
	}
	for _, t := range total {
		in.TotalCholesterol = ptrToFlt(t.value)
		c.Assert(effectiveLipidScore(in, cerebralInfarctionLipids), Equals, t.cerebral, Commentf("total %v", t.value))
		c.Assert(effectiveLipidScore(in, myocardialInfarctionLipids), Equals, t.myocardial, Commentf("total %v", t.value))
	}
}

func (s *CirculatorySuite) TestHighHDLLowersRisk(c *C) {
	in := RiskFactorInput{Age: 40, Gender: Female, Smoking: NeverSmoked, HeightCm: 160, WeightKg: 50, SystolicBP: 110, DiastolicBP: 70}
	in.HDLCholesterol = ptrToFlt(59)
	c.Assert(CerebralInfarctionRisk(in), Equals, 1.0)
	c.Assert(MyocardialInfarctionRisk(in), Equals, 0.5)

	in.HDLCholesterol = ptrToFlt(60)
	c.Assert(CerebralInfarctionRisk(in), Equals, 0.5)
	// the provisional model lets this go below zero
	c.Assert(MyocardialInfarctionRisk(in), Equals, -0.5)
	c.Assert(LevelForProbability(MyocardialInfarctionRisk(in)), Equals, Low)
}

func (s *CirculatorySuite) TestBloodPressureContributions(c *C) {
	in := RiskFactorInput{Age: 40, Gender: Female, Smoking: NeverSmoked, HeightCm: 160, WeightKg: 50, DiastolicBP: 80, HDLCholesterol: ptrToFlt(50)}
	tests := []struct {
		systolic                          int
		onMedication                      bool
		cerebral, myocardial, totalStroke float64
	}{
		{129, false, 1, 0.5, 1.5},
		{130, false, 2, 0.5, 2.5},
		{140, false, 3, 2, 4.5},
		{160, false, 3, 2, 5.5},
		{110, true, 4, 2.5, 6},
		{170, true, 4, 2.5, 6},
	}
	for _, t := range tests {
		in.SystolicBP = t.systolic
		in.OnBPMedication = t.onMedication
		c.Assert(CerebralInfarctionRisk(in), Equals, t.cerebral, Commentf("%d %v", t.systolic, t.onMedication))
		c.Assert(MyocardialInfarctionRisk(in), Equals, t.myocardial, Commentf("%d %v", t.systolic, t.onMedication))
		c.Assert(TotalStrokeRisk(in), Equals, t.totalStroke, Commentf("%d %v", t.systolic, t.onMedication))
	}
}

func (s *CirculatorySuite) TestHighestRiskInput(c *C) {
	in := RiskFactorInput{
		Age:            69,
		Gender:         Male,
		Smoking:        CurrentSmoker,
		HeightCm:       160,
		WeightKg:       90,
		SystolicBP:     200,
		DiastolicBP:    120,
		OnBPMedication: true,
		HasDiabetes:    true,
		HDLCholesterol: ptrToFlt(30),
		LDLCholesterol: ptrToFlt(200),
	}
	r := EvaluateCirculatoryRisk(in)
	c.Assert(r.CerebralInfarction, DeepEquals, DiseaseRisk{Probability: 15.5, RiskLevel: VeryHigh})
	c.Assert(r.MyocardialInfarction, DeepEquals, DiseaseRisk{Probability: 18, RiskLevel: VeryHigh})
	c.Assert(r.TotalStroke, DeepEquals, DiseaseRisk{Probability: 18.5, RiskLevel: VeryHigh})
	c.Assert(r.VascularAge, Equals, 87)
	c.Assert(r.AgeDifference, Equals, 18)
}

func (s *CirculatorySuite) TestProbabilitiesAreClamped(c *C) {
	for age := 40; age <= 69; age++ {
		in := smokerWithHighCholesterol()
		in.Age = age
		in.OnBPMedication = true
		in.HasDiabetes = true
		c.Assert(CerebralInfarctionRisk(in) <= maxCerebralInfarctionRisk, Equals, true)
		c.Assert(MyocardialInfarctionRisk(in) <= maxMyocardialInfarctionRisk, Equals, true)
		c.Assert(TotalStrokeRisk(in) <= maxTotalStrokeRisk, Equals, true)
	}
}

func (s *CirculatorySuite) TestRiskFactors(c *C) {
	c.Assert(RiskFactors(smokerWithHighCholesterol()), DeepEquals, []string{
		FactorSmoking, FactorBloodPressure, FactorLowHDL, FactorHighCholesterol, FactorOverweight,
	})
	in := RiskFactorInput{Age: 40, Gender: Female, Smoking: PastSmoker, HeightCm: 160, WeightKg: 50, SystolicBP: 110, DiastolicBP: 70}
	c.Assert(RiskFactors(in), HasLen, 0)
}
