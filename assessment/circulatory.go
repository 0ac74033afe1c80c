package assessment

import "math"

// Circulatory disease risk, after https://epi.ncc.go.jp/riskcheck/circulatory/
//
// NOTE: these are provisional point accumulations, not the published JPHC equations.  Keep the arithmetic as
// it is until the published model replaces it wholesale.

const (
	maxCerebralInfarctionRisk   = 30
	maxMyocardialInfarctionRisk = 25
	maxTotalStrokeRisk          = 35

	// vascular age added per risk factor present
	yearsPerRiskFactor = 3
)

// lipidTables holds the LDL table and the total cholesterol table used when LDL is missing.
type lipidTables struct {
	ldl   stepTable[float64, float64]
	total stepTable[float64, float64]
}

var (
	cerebralInfarctionAge = atLeast(0.0,
		step[int, float64]{60, 3},
		step[int, float64]{50, 2},
		step[int, float64]{45, 1},
	)
	cerebralInfarctionSystolic = atLeast(0.0,
		step[int, float64]{140, 2},
		step[int, float64]{130, 1},
	)
	cerebralInfarctionHDL = below(-0.5,
		step[float64, float64]{40, 1.5},
		step[float64, float64]{60, 0},
	)
	cerebralInfarctionLipids = lipidTables{
		ldl: atLeast(0.0,
			step[float64, float64]{160, 2},
			step[float64, float64]{140, 1.5},
			step[float64, float64]{120, 1},
		),
		total: atLeast(0.0,
			step[float64, float64]{260, 2},
			step[float64, float64]{240, 1.5},
			step[float64, float64]{220, 1},
		),
	}

	myocardialInfarctionAge = atLeast(0.0,
		step[int, float64]{65, 3},
		step[int, float64]{55, 2},
		step[int, float64]{50, 1},
	)
	myocardialInfarctionSystolic = atLeast(0.0,
		step[int, float64]{140, 1.5},
	)
	myocardialInfarctionHDL = below(-1.0,
		step[float64, float64]{40, 2},
		step[float64, float64]{60, 0},
	)
	myocardialInfarctionLipids = lipidTables{
		ldl: atLeast(0.0,
			step[float64, float64]{160, 3},
			step[float64, float64]{140, 2},
			step[float64, float64]{120, 1},
		),
		total: atLeast(0.0,
			step[float64, float64]{260, 2.5},
			step[float64, float64]{240, 2},
			step[float64, float64]{220, 1},
		),
	}

	hemorrhageSystolic = atLeast(0.0,
		step[int, float64]{160, 2},
		step[int, float64]{140, 1},
	)

	// a single flag for vascular age: LDL >= 140, or total cholesterol >= 240 without an LDL value
	highCholesterolFlag = lipidTables{
		ldl:   atLeast(0.0, step[float64, float64]{140, 1}),
		total: atLeast(0.0, step[float64, float64]{240, 1}),
	}
)

// DiseaseRisk is the 10-year probability (percent) of one outcome and its level.
type DiseaseRisk struct {
	Probability float64   `json:"risk_probability" bson:"risk_probability"`
	RiskLevel   RiskLevel `json:"risk_level" bson:"risk_level"`
}

func newDiseaseRisk(probability float64) DiseaseRisk {
	return DiseaseRisk{Probability: probability, RiskLevel: LevelForProbability(probability)}
}

// CirculatoryRiskResult holds the circulatory disease estimates for a check with lipid data.
type CirculatoryRiskResult struct {
	CerebralInfarction   DiseaseRisk `json:"cerebral_infarction" bson:"cerebral_infarction"`
	MyocardialInfarction DiseaseRisk `json:"myocardial_infarction" bson:"myocardial_infarction"`
	TotalStroke          DiseaseRisk `json:"total_stroke" bson:"total_stroke"`
	VascularAge          int         `json:"vascular_age" bson:"vascular_age"`
	AgeDifference        int         `json:"age_difference" bson:"age_difference"`
}

// EvaluateCirculatoryRisk estimates cerebral infarction, myocardial infarction and total stroke risk along
// with a vascular age.  It returns nil when neither HDL nor total cholesterol was entered.
func EvaluateCirculatoryRisk(in RiskFactorInput) *CirculatoryRiskResult {
	if !in.HasLipidPanel() {
		return nil
	}
	vascularAge := VascularAge(in)
	return &CirculatoryRiskResult{
		CerebralInfarction:   newDiseaseRisk(CerebralInfarctionRisk(in)),
		MyocardialInfarction: newDiseaseRisk(MyocardialInfarctionRisk(in)),
		TotalStroke:          newDiseaseRisk(TotalStrokeRisk(in)),
		VascularAge:          vascularAge,
		AgeDifference:        vascularAge - in.Age,
	}
}

// CerebralInfarctionRisk returns the provisional cerebral infarction probability, at most 30%.
func CerebralInfarctionRisk(in RiskFactorInput) float64 {
	risk := 1.0
	risk += cerebralInfarctionAge.lookup(in.Age)
	if in.Gender == Male {
		risk += 1
	}
	switch in.Smoking {
	case CurrentSmoker:
		risk += 2
	case PastSmoker:
		risk += 0.5
	}
	if in.OnBPMedication {
		risk += 3
	} else {
		risk += cerebralInfarctionSystolic.lookup(in.SystolicBP)
	}
	if in.HasDiabetes {
		risk += 2
	}
	if in.HDLCholesterol != nil {
		risk += cerebralInfarctionHDL.lookup(*in.HDLCholesterol)
	}
	risk += effectiveLipidScore(in, cerebralInfarctionLipids)
	return math.Min(risk, maxCerebralInfarctionRisk)
}

// MyocardialInfarctionRisk returns the provisional myocardial infarction probability, at most 25%.
func MyocardialInfarctionRisk(in RiskFactorInput) float64 {
	risk := 0.5
	risk += myocardialInfarctionAge.lookup(in.Age)
	if in.Gender == Male {
		risk += 2
	}
	switch in.Smoking {
	case CurrentSmoker:
		risk += 3
	case PastSmoker:
		risk += 1
	}
	if in.OnBPMedication {
		risk += 2
	} else {
		risk += myocardialInfarctionSystolic.lookup(in.SystolicBP)
	}
	if in.HasDiabetes {
		risk += 2.5
	}
	if in.HDLCholesterol != nil {
		risk += myocardialInfarctionHDL.lookup(*in.HDLCholesterol)
	}
	risk += effectiveLipidScore(in, myocardialInfarctionLipids)
	return math.Min(risk, maxMyocardialInfarctionRisk)
}

// TotalStrokeRisk adds hemorrhagic stroke risk (blood pressure, smoking) on top of the cerebral infarction
// risk, at most 35%.
func TotalStrokeRisk(in RiskFactorInput) float64 {
	additional := 0.5
	if in.OnBPMedication {
		additional += 1.5
	} else {
		additional += hemorrhageSystolic.lookup(in.SystolicBP)
	}
	if in.smokesNow() {
		additional += 1
	}
	return math.Min(CerebralInfarctionRisk(in)+additional, maxTotalStrokeRisk)
}

// VascularAge adds three years to the actual age for each risk factor present.
func VascularAge(in RiskFactorInput) int {
	return in.Age + yearsPerRiskFactor*RiskFactorCount(in)
}

// Vascular age risk factors
const (
	FactorSmoking         = "Smoking"
	FactorBloodPressure   = "Blood Pressure"
	FactorDiabetes        = "Diabetes"
	FactorLowHDL          = "Low HDL"
	FactorHighCholesterol = "High Cholesterol"
	FactorOverweight      = "Overweight"
)

// RiskFactors lists the vascular age risk factors present: current smoking, hypertension (treated or systolic
// >= 140), diabetes, low HDL, high cholesterol and BMI >= 25.
func RiskFactors(in RiskFactorInput) []string {
	var factors []string
	if in.smokesNow() {
		factors = append(factors, FactorSmoking)
	}
	if in.OnBPMedication || in.SystolicBP >= 140 {
		factors = append(factors, FactorBloodPressure)
	}
	if in.HasDiabetes {
		factors = append(factors, FactorDiabetes)
	}
	if in.HDLCholesterol != nil && *in.HDLCholesterol < 40 {
		factors = append(factors, FactorLowHDL)
	}
	if effectiveLipidScore(in, highCholesterolFlag) > 0 {
		factors = append(factors, FactorHighCholesterol)
	}
	if in.BMI() >= 25 {
		factors = append(factors, FactorOverweight)
	}
	return factors
}

// RiskFactorCount counts the vascular age risk factors present.
func RiskFactorCount(in RiskFactorInput) int {
	return len(RiskFactors(in))
}

// effectiveLipidScore scores LDL when it was entered and falls back to total cholesterol only when LDL is
// missing.  The two are never combined.
func effectiveLipidScore(in RiskFactorInput, t lipidTables) float64 {
	switch {
	case in.LDLCholesterol != nil:
		return t.ldl.lookup(*in.LDLCholesterol)
	case in.TotalCholesterol != nil:
		return t.total.lookup(*in.TotalCholesterol)
	}
	return 0
}
