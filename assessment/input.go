package assessment

// Gender is the sex recorded for the scoring tables.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// SmokingStatus is the smoking habit reported on the check form.
type SmokingStatus string

const (
	NeverSmoked   SmokingStatus = "never"
	PastSmoker    SmokingStatus = "past"
	CurrentSmoker SmokingStatus = "current"
)

// RiskFactorInput holds the health factors for a single risk check.  The engines expect it to be validated
// already: age in [40, 69], positive height and weight, and lipid values either nil or positive.  The lipid
// fields are pointers because they are optional on the form; nil means the value was not entered.
type RiskFactorInput struct {
	Age              int           `json:"age" bson:"age"`
	Gender           Gender        `json:"gender" bson:"gender"`
	Smoking          SmokingStatus `json:"smoking" bson:"smoking"`
	HeightCm         float64       `json:"height" bson:"height"`
	WeightKg         float64       `json:"weight" bson:"weight"`
	SystolicBP       int           `json:"systolic_bp" bson:"systolic_bp"`
	DiastolicBP      int           `json:"diastolic_bp" bson:"diastolic_bp"`
	OnBPMedication   bool          `json:"on_bp_medication" bson:"on_bp_medication"`
	HasDiabetes      bool          `json:"has_diabetes" bson:"has_diabetes"`
	HDLCholesterol   *float64      `json:"hdl_cholesterol,omitempty" bson:"hdl_cholesterol,omitempty"`
	LDLCholesterol   *float64      `json:"ldl_cholesterol,omitempty" bson:"ldl_cholesterol,omitempty"`
	TotalCholesterol *float64      `json:"total_cholesterol,omitempty" bson:"total_cholesterol,omitempty"`
	Triglycerides    *float64      `json:"triglycerides,omitempty" bson:"triglycerides,omitempty"`
}

// BMI returns weight (kg) divided by the square of height (m).
func (in RiskFactorInput) BMI() float64 {
	heightInMeters := in.HeightCm / 100
	return in.WeightKg / (heightInMeters * heightInMeters)
}

// HasLipidPanel reports whether enough cholesterol data was entered for the circulatory evaluation.
func (in RiskFactorInput) HasLipidPanel() bool {
	return in.HDLCholesterol != nil || in.TotalCholesterol != nil
}

func (in RiskFactorInput) smokesNow() bool {
	return in.Smoking == CurrentSmoker
}
