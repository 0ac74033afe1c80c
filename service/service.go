package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/plugin"
	"github.com/intervention-engine/strokerisk/store"
)

// RiskService is an interface for the functions that must be supported by a risk service used in our
// stroke risk server.
type RiskService interface {
	// Evaluate validates the input and runs both engines without storing anything
	Evaluate(in assessment.RiskFactorInput) (*Evaluation, error)
	// Calculate validates the request, runs the engines and plugins, and stores the check along with its pies
	Calculate(ctx context.Context, req CheckRequest) (*store.Check, error)
}

// CheckRequest is a named risk check submitted for calculation.
type CheckRequest struct {
	Name  string                     `json:"name"`
	Input assessment.RiskFactorInput `json:"input"`
}

// Evaluation holds both engine results for one input.  Circulatory is nil when the input has no HDL or total
// cholesterol.
type Evaluation struct {
	Result      assessment.StrokeRiskResult       `json:"result"`
	Circulatory *assessment.CirculatoryRiskResult `json:"circulatory_result"`
}

// ReferenceRiskService is a container for risk service plugins that validates checks, invokes the calculations
// on the plugins, and saves the checks and their risk pies to the store.
type ReferenceRiskService struct {
	plugins []plugin.RiskServicePlugin
	checks  store.CheckStore
	baseURL string
	logger  *zap.Logger
}

// NewReferenceRiskService creates a new risk service backed by the passed in store.  baseURL is the public URL
// of this server; pies are linked as <baseURL>/pies/<id>.
func NewReferenceRiskService(checks store.CheckStore, baseURL string, logger *zap.Logger) *ReferenceRiskService {
	return &ReferenceRiskService{
		checks:  checks,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// RegisterPlugin registers a plugin for use by the risk service
func (rs *ReferenceRiskService) RegisterPlugin(plugin plugin.RiskServicePlugin) {
	rs.plugins = append(rs.plugins, plugin)
}

// BasePieURL is the URL that pie ids are appended to in assessment bases
func (rs *ReferenceRiskService) BasePieURL() string {
	return rs.baseURL + "/pies"
}

func (rs *ReferenceRiskService) Evaluate(in assessment.RiskFactorInput) (*Evaluation, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return &Evaluation{
		Result:      assessment.EvaluateStrokeRisk(in),
		Circulatory: assessment.EvaluateCirculatoryRisk(in),
	}, nil
}

func (rs *ReferenceRiskService) Calculate(ctx context.Context, req CheckRequest) (*store.Check, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	check := store.NewCheck(req.Name, req.Input)
	check.Result = assessment.EvaluateStrokeRisk(req.Input)
	check.Circulatory = assessment.EvaluateCirculatoryRisk(req.Input)
	check.Assessments = []store.Assessment{}

	// every plugin runs before anything is stored, so a failing plugin leaves no pies behind
	subject := rs.baseURL + "/checks/" + check.ID
	var pies []*plugin.Pie
	seen := make(map[string]bool)
	for _, p := range rs.plugins {
		config := p.Config()
		if config.Method.Code == "" {
			return nil, errors.New("Risk Assessment Plugins MUST provide a method with a code")
		}

		results, err := p.Calculate(req.Input, subject)
		if err != nil {
			var na plugin.NotApplicableError
			if errors.As(err, &na) {
				rs.logger.Debug("plugin not applicable",
					zap.String("plugin", config.Name),
					zap.String("check_id", check.ID),
					zap.String("reason", na.Error()))
				continue
			}
			return nil, fmt.Errorf("%s: %w", config.Name, err)
		}
		plugin.SortResultsByOutcome(results)

		for _, r := range results {
			check.Assessments = append(check.Assessments, rs.toAssessment(r, config.Method))
			if r.Pie != nil && !seen[r.Pie.Id.Hex()] {
				seen[r.Pie.Id.Hex()] = true
				pies = append(pies, r.Pie)
			}
		}
	}

	for _, pie := range pies {
		if err := rs.checks.SavePie(ctx, pie); err != nil {
			return nil, fmt.Errorf("failed to save pie: %w", err)
		}
	}
	if err := rs.checks.SaveCheck(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to save check: %w", err)
	}
	rs.logger.Info("risk check calculated",
		zap.String("check_id", check.ID),
		zap.Int("total_score", check.Result.TotalScore),
		zap.String("risk_level", string(check.Result.RiskLevel)),
		zap.Int("assessments", len(check.Assessments)))
	return check, nil
}

// toAssessment converts a plugin result to an assessment linking to its pie
func (rs *ReferenceRiskService) toAssessment(r plugin.RiskServiceCalculationResult, method plugin.Coding) store.Assessment {
	a := store.Assessment{
		Method:      method,
		Outcome:     r.Outcome,
		Score:       r.Score,
		Probability: r.GetProbabilityDecimalOrScore(),
		RiskLevel:   r.RiskLevel,
		AsOf:        r.AsOf,
	}
	if r.Pie != nil {
		a.Basis = rs.BasePieURL() + "/" + r.Pie.Id.Hex()
	}
	return a
}
