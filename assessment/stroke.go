package assessment

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// The JPHC stroke score: https://epi.ncc.go.jp/jphc/outcome/3284.html
// Per-factor points are summed and the total is mapped to a 10-year probability of stroke.

var ageScores = below(19,
	step[int, int]{45, 0},
	step[int, int]{50, 5},
	step[int, int]{55, 6},
	step[int, int]{60, 12},
	step[int, int]{65, 16},
)

var bmiScores = below(3,
	step[float64, int]{25, 0},
	step[float64, int]{30, 2},
)

// Both BP tables are first match wins.  Only the lowest band without medication needs both readings under
// the limit; every other band matches on either reading.
var (
	bpScoresOnMedication = bpTable{
		bands: []bpBand{
			{systolicBelow: 140, diastolicBelow: 90, points: 10},
			{systolicBelow: 180, diastolicBelow: 110, points: 11},
		},
		otherwise: 15,
	}
	bpScoresWithoutMedication = bpTable{
		bands: []bpBand{
			{systolicBelow: 120, diastolicBelow: 80, requireBoth: true, points: 0},
			{systolicBelow: 130, diastolicBelow: 85, points: 3},
			{systolicBelow: 140, diastolicBelow: 90, points: 6},
			{systolicBelow: 160, diastolicBelow: 100, points: 8},
			{systolicBelow: 180, diastolicBelow: 110, points: 11},
		},
		otherwise: 13,
	}
)

// scoreToStrokeRisk maps the total score to the 10-year stroke probability in percent.  The published table
// gives ranges ("1 to <2%"); the midpoint of each range is used, and 20 for "20% or more".
var scoreToStrokeRisk = atMost(20.0,
	step[int, float64]{10, 0.5},
	step[int, float64]{17, 1.5},
	step[int, float64]{22, 2.5},
	step[int, float64]{25, 3.5},
	step[int, float64]{27, 4.5},
	step[int, float64]{29, 5.5},
	step[int, float64]{30, 6.5},
	step[int, float64]{32, 7.5},
	step[int, float64]{33, 8.5},
	step[int, float64]{34, 9.5},
	step[int, float64]{36, 11},
	step[int, float64]{39, 13.5},
	step[int, float64]{42, 17.5},
)

// StrokeRiskResult is the scored outcome of a stroke risk check.
type StrokeRiskResult struct {
	AgeScore        int       `json:"age_score" bson:"age_score"`
	GenderScore     int       `json:"gender_score" bson:"gender_score"`
	SmokingScore    int       `json:"smoking_score" bson:"smoking_score"`
	BMIScore        int       `json:"bmi_score" bson:"bmi_score"`
	BPScore         int       `json:"bp_score" bson:"bp_score"`
	DiabetesScore   int       `json:"diabetes_score" bson:"diabetes_score"`
	TotalScore      int       `json:"total_score" bson:"total_score"`
	BMI             float64   `json:"bmi" bson:"bmi"`
	RiskProbability float64   `json:"risk_probability" bson:"risk_probability"`
	RiskLevel       RiskLevel `json:"risk_level" bson:"risk_level"`
}

// EvaluateStrokeRisk scores the input against the JPHC stroke table.  It does no range checking of its own.
func EvaluateStrokeRisk(in RiskFactorInput) StrokeRiskResult {
	bmi := in.BMI()
	r := StrokeRiskResult{
		AgeScore:      AgeScore(in.Age),
		GenderScore:   GenderScore(in.Gender),
		SmokingScore:  SmokingScore(in.Smoking, in.Gender),
		BMIScore:      BMIScore(bmi),
		BPScore:       BPScore(in.SystolicBP, in.DiastolicBP, in.OnBPMedication),
		DiabetesScore: DiabetesScore(in.HasDiabetes),
		BMI:           roundTenths(bmi),
	}
	r.TotalScore = r.AgeScore + r.GenderScore + r.SmokingScore + r.BMIScore + r.BPScore + r.DiabetesScore
	r.RiskProbability = RiskProbability(r.TotalScore)
	r.RiskLevel = LevelForProbability(r.RiskProbability)
	return r
}

func AgeScore(age int) int {
	return ageScores.lookup(age)
}

func GenderScore(g Gender) int {
	if g == Male {
		return 6
	}
	return 0
}

// SmokingScore only counts current smokers; past smoking scores nothing.
func SmokingScore(s SmokingStatus, g Gender) int {
	if s != CurrentSmoker {
		return 0
	}
	if g == Male {
		return 4
	}
	return 8
}

func BMIScore(bmi float64) int {
	return bmiScores.lookup(bmi)
}

func BPScore(systolic, diastolic int, onMedication bool) int {
	if onMedication {
		return bpScoresOnMedication.lookup(systolic, diastolic)
	}
	return bpScoresWithoutMedication.lookup(systolic, diastolic)
}

func DiabetesScore(hasDiabetes bool) int {
	if hasDiabetes {
		return 7
	}
	return 0
}

// RiskProbability returns the 10-year stroke probability (percent) for a total score.
func RiskProbability(totalScore int) float64 {
	return scoreToStrokeRisk.lookup(totalScore)
}

// exactFloatDigits covers every fractional digit of a float64's exact binary value
const exactFloatDigits = 1074

// roundTenths rounds the exact binary value of f to one decimal, ties away from zero.  The shortest decimal
// form is not used: 24.15 is stored just below 24.15 and must round to 24.1.
func roundTenths(f float64) float64 {
	exact := decimal.RequireFromString(new(big.Float).SetFloat64(f).Text('f', exactFloatDigits))
	rounded, _ := exact.Round(1).Float64()
	return rounded
}
