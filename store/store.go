package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/plugin"
)

var (
	// ErrNotFound is returned when a check or pie does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when saving a check or pie whose id is already taken
	ErrDuplicate = errors.New("duplicate id")
)

// CheckStore persists completed risk checks and the pies that back their assessments.
type CheckStore interface {
	SaveCheck(ctx context.Context, check *Check) error
	FindCheck(ctx context.Context, id string) (*Check, error)
	// ListChecks returns at most limit checks, newest first.  A limit of zero or less returns every check.
	ListChecks(ctx context.Context, limit int) ([]*Check, error)
	SavePie(ctx context.Context, pie *plugin.Pie) error
	FindPie(ctx context.Context, id string) (*plugin.Pie, error)
}

// Check is one completed stroke risk check: who it was for, the factors entered, and everything computed from
// them.
type Check struct {
	ID          string                            `json:"id" bson:"_id"`
	Name        string                            `json:"name" bson:"name"`
	CheckedAt   time.Time                         `json:"checked_at" bson:"checked_at"`
	Input       assessment.RiskFactorInput        `json:"input" bson:"input"`
	Result      assessment.StrokeRiskResult       `json:"result" bson:"result"`
	Circulatory *assessment.CirculatoryRiskResult `json:"circulatory_result,omitempty" bson:"circulatory_result,omitempty"`
	Assessments []Assessment                      `json:"assessments" bson:"assessments"`
}

// NewCheck returns a check with a fresh id, stamped with the current time.
func NewCheck(name string, in assessment.RiskFactorInput) *Check {
	return &Check{
		ID:        uuid.NewString(),
		Name:      name,
		CheckedAt: time.Now().UTC(),
		Input:     in,
	}
}

// Assessment is one plugin result recorded on a check.  Basis links to the pie that explains it.
type Assessment struct {
	Method      plugin.Coding        `json:"method" bson:"method"`
	Outcome     string               `json:"outcome" bson:"outcome"`
	Score       *int                 `json:"score,omitempty" bson:"score,omitempty"`
	Probability *float64             `json:"probability_decimal,omitempty" bson:"probability_decimal,omitempty"`
	RiskLevel   assessment.RiskLevel `json:"risk_level" bson:"risk_level"`
	AsOf        time.Time            `json:"as_of" bson:"as_of"`
	Basis       string               `json:"basis" bson:"basis"`
}
