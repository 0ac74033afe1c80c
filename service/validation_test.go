package service

import (
	"github.com/intervention-engine/strokerisk/assessment"
	. "gopkg.in/check.v1"
)

type ValidationSuite struct{}

var _ = Suite(&ValidationSuite{})

func (v *ValidationSuite) TestValidInput(c *C) {
	c.Assert(Validate(validInput()), IsNil)

	in := validInput()
	in.HDLCholesterol = ptrToFlt(55)
	in.LDLCholesterol = ptrToFlt(120)
	in.TotalCholesterol = ptrToFlt(200)
	in.Triglycerides = ptrToFlt(150)
	c.Assert(Validate(in), IsNil)
}

func (v *ValidationSuite) TestRangeBoundaries(c *C) {
	tests := []struct {
		mutate func(*assessment.RiskFactorInput)
		field  string
	}{
		{func(in *assessment.RiskFactorInput) { in.Age = 39 }, "age"},
		{func(in *assessment.RiskFactorInput) { in.Age = 70 }, "age"},
		{func(in *assessment.RiskFactorInput) { in.Gender = "other" }, "gender"},
		{func(in *assessment.RiskFactorInput) { in.Smoking = "" }, "smoking"},
		{func(in *assessment.RiskFactorInput) { in.HeightCm = 99.9 }, "height"},
		{func(in *assessment.RiskFactorInput) { in.HeightCm = 250.1 }, "height"},
		{func(in *assessment.RiskFactorInput) { in.WeightKg = 19 }, "weight"},
		{func(in *assessment.RiskFactorInput) { in.WeightKg = 201 }, "weight"},
		{func(in *assessment.RiskFactorInput) { in.SystolicBP = 69 }, "systolic_bp"},
		{func(in *assessment.RiskFactorInput) { in.SystolicBP = 251 }, "systolic_bp"},
		{func(in *assessment.RiskFactorInput) { in.DiastolicBP = 39 }, "diastolic_bp"},
		{func(in *assessment.RiskFactorInput) { in.DiastolicBP = 151 }, "diastolic_bp"},
		{func(in *assessment.RiskFactorInput) { in.HDLCholesterol = ptrToFlt(0) }, "hdl_cholesterol"},
		{func(in *assessment.RiskFactorInput) { in.LDLCholesterol = ptrToFlt(-1) }, "ldl_cholesterol"},
		{func(in *assessment.RiskFactorInput) { in.TotalCholesterol = ptrToFlt(0) }, "total_cholesterol"},
		{func(in *assessment.RiskFactorInput) { in.Triglycerides = ptrToFlt(0) }, "triglycerides"},
	}
	for _, t := range tests {
		in := validInput()
		t.mutate(&in)
		err := Validate(in)
		c.Assert(err, NotNil, Commentf(t.field))
		verr := err.(*ValidationError)
		c.Assert(verr.Fields, HasLen, 1, Commentf(t.field))
		_, ok := verr.Fields[t.field]
		c.Assert(ok, Equals, true, Commentf(t.field))
	}
}

func (v *ValidationSuite) TestInclusiveBounds(c *C) {
	for _, age := range []int{40, 69} {
		in := validInput()
		in.Age = age
		in.HeightCm = 100
		in.WeightKg = 200
		in.SystolicBP = 250
		in.DiastolicBP = 40
		c.Assert(Validate(in), IsNil)
	}
}

func (v *ValidationSuite) TestErrorListsEveryField(c *C) {
	err := ValidateRequest(CheckRequest{})
	c.Assert(err, NotNil)
	verr := err.(*ValidationError)
	c.Assert(verr.Fields, HasLen, 8)
	c.Assert(err, ErrorMatches, "invalid risk check: age: .*; diastolic_bp: .*; gender: .*; height: .*; name: .*; smoking: .*; systolic_bp: .*; weight: .*")
}
