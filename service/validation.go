package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/intervention-engine/strokerisk/assessment"
)

// ValidationError lists every field of a check that failed validation, keyed by its JSON name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "invalid risk check: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks the input against the ranges the check form accepts.  The scoring tables are only defined
// for ages 40 to 69.
func Validate(in assessment.RiskFactorInput) error {
	verr := &ValidationError{}
	validateInput(in, verr)
	return verr.orNil()
}

// ValidateRequest validates the input and requires a non-blank name.
func ValidateRequest(req CheckRequest) error {
	verr := &ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.add("name", "name is required")
	}
	validateInput(req.Input, verr)
	return verr.orNil()
}

func validateInput(in assessment.RiskFactorInput, verr *ValidationError) {
	if in.Age < 40 || in.Age > 69 {
		verr.add("age", "age must be between 40 and 69")
	}
	if in.Gender != assessment.Male && in.Gender != assessment.Female {
		verr.add("gender", "gender must be male or female")
	}
	switch in.Smoking {
	case assessment.NeverSmoked, assessment.PastSmoker, assessment.CurrentSmoker:
	default:
		verr.add("smoking", "smoking must be never, past or current")
	}
	if in.HeightCm < 100 || in.HeightCm > 250 {
		verr.add("height", "height must be between 100 and 250 cm")
	}
	if in.WeightKg < 20 || in.WeightKg > 200 {
		verr.add("weight", "weight must be between 20 and 200 kg")
	}
	if in.SystolicBP < 70 || in.SystolicBP > 250 {
		verr.add("systolic_bp", "systolic blood pressure must be between 70 and 250 mmHg")
	}
	if in.DiastolicBP < 40 || in.DiastolicBP > 150 {
		verr.add("diastolic_bp", "diastolic blood pressure must be between 40 and 150 mmHg")
	}

	lipids := []struct {
		field string
		value *float64
	}{
		{"hdl_cholesterol", in.HDLCholesterol},
		{"ldl_cholesterol", in.LDLCholesterol},
		{"total_cholesterol", in.TotalCholesterol},
		{"triglycerides", in.Triglycerides},
	}
	for _, l := range lipids {
		if l.value != nil && *l.value <= 0 {
			verr.add(l.field, l.field+" must be greater than zero when given")
		}
	}
}
