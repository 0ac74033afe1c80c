package assessments

import "github.com/intervention-engine/strokerisk/assessment"

func ptrToFlt(f float64) *float64 {
	return &f
}

// typicalInput is a 50 year old male current smoker with untreated systolic 150 and a BMI of about 27.  He has
// no lipid panel.
func typicalInput() assessment.RiskFactorInput {
	return assessment.RiskFactorInput{
		Age:         50,
		Gender:      assessment.Male,
		Smoking:     assessment.CurrentSmoker,
		HeightCm:    170,
		WeightKg:    78,
		SystolicBP:  150,
		DiastolicBP: 95,
	}
}

func withLipids(in assessment.RiskFactorInput, hdl, total float64) assessment.RiskFactorInput {
	in.HDLCholesterol = ptrToFlt(hdl)
	in.TotalCholesterol = ptrToFlt(total)
	return in
}
